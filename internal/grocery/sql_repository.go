package grocery

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

var (
	recordColumns = strings.Join(append(append([]string{"id"}, mealColumns...), "number_of_people", "grocery_list", "created_at"), ", ")

	insertRecordSQL = fmt.Sprintf(
		"INSERT INTO meal_plans (%s, number_of_people, grocery_list, created_at) VALUES (%s)",
		strings.Join(mealColumns, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(mealColumns)+3), ", "),
	)
	getRecordSQL   = fmt.Sprintf("SELECT %s FROM meal_plans WHERE id = ?", recordColumns)
	listRecordsSQL = fmt.Sprintf("SELECT %s FROM meal_plans ORDER BY id DESC LIMIT ?", recordColumns)
)

// SQLRepository is a database-backed repository for grocery lists.
type SQLRepository struct {
	db *sql.DB
}

// NewSQLRepository creates a new SQLRepository. The meal_plans table must
// already exist (see database.RunMigrations).
func NewSQLRepository(d *sql.DB) *SQLRepository {
	return &SQLRepository{db: d}
}

// Save inserts a new record and returns its ID.
func (r *SQLRepository) Save(ctx context.Context, plan MealPlan, list GroceryList) (int64, error) {
	rec := NewRecord(plan, list)

	listJSON, err := json.Marshal(rec.GroceryList)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal grocery list: %w", err)
	}

	args := make([]any, 0, len(mealColumns)+3)
	for _, f := range rec.mealFields() {
		args = append(args, *f)
	}
	var people sql.NullInt64
	if rec.NumberOfPeople != nil {
		people = sql.NullInt64{Int64: int64(*rec.NumberOfPeople), Valid: true}
	}
	args = append(args, people, string(listJSON), rec.CreatedAt.Format(timestampLayout))

	res, err := r.db.ExecContext(ctx, insertRecordSQL, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert meal plan: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read meal plan id: %w", err)
	}
	return id, nil
}

// Get retrieves a record by its ID.
func (r *SQLRepository) Get(ctx context.Context, id int64) (*Record, error) {
	rec, err := scanRecord(r.db.QueryRowContext(ctx, getRecordSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Record not found
		}
		return nil, fmt.Errorf("failed to get meal plan by ID: %w", err)
	}
	return rec, nil
}

// List retrieves the most recent records.
func (r *SQLRepository) List(ctx context.Context, limit int) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, listRecordsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal plan: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var (
		rec       Record
		people    sql.NullInt64
		listJSON  string
		createdAt string
	)

	dest := []any{&rec.ID}
	for _, f := range rec.mealFields() {
		dest = append(dest, f)
	}
	dest = append(dest, &people, &listJSON, &createdAt)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if people.Valid {
		n := int(people.Int64)
		rec.NumberOfPeople = &n
	}
	if err := json.Unmarshal([]byte(listJSON), &rec.GroceryList); err != nil {
		return nil, fmt.Errorf("failed to unmarshal grocery list: %w", err)
	}
	ts, err := time.Parse(timestampLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at %q: %w", createdAt, err)
	}
	rec.CreatedAt = ts.UTC()
	return &rec, nil
}
