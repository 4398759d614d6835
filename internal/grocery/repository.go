package grocery

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Record is a persisted meal plan, flattened one field per meal, together
// with the grocery list generated for it.
type Record struct {
	ID              int64       `json:"id"`
	MondayLunch     string      `json:"monday_lunch"`
	MondayDinner    string      `json:"monday_dinner"`
	TuesdayLunch    string      `json:"tuesday_lunch"`
	TuesdayDinner   string      `json:"tuesday_dinner"`
	WednesdayLunch  string      `json:"wednesday_lunch"`
	WednesdayDinner string      `json:"wednesday_dinner"`
	ThursdayLunch   string      `json:"thursday_lunch"`
	ThursdayDinner  string      `json:"thursday_dinner"`
	FridayLunch     string      `json:"friday_lunch"`
	FridayDinner    string      `json:"friday_dinner"`
	SaturdayLunch   string      `json:"saturday_lunch"`
	SaturdayDinner  string      `json:"saturday_dinner"`
	SundayLunch     string      `json:"sunday_lunch"`
	SundayDinner    string      `json:"sunday_dinner"`
	NumberOfPeople  *int        `json:"number_of_people,omitempty"`
	GroceryList     GroceryList `json:"grocery_list"`
	CreatedAt       time.Time   `json:"created_at"`
}

// mealColumns lists the flattened meal columns in the order returned by
// Record.mealFields.
var mealColumns = []string{
	"monday_lunch", "monday_dinner",
	"tuesday_lunch", "tuesday_dinner",
	"wednesday_lunch", "wednesday_dinner",
	"thursday_lunch", "thursday_dinner",
	"friday_lunch", "friday_dinner",
	"saturday_lunch", "saturday_dinner",
	"sunday_lunch", "sunday_dinner",
}

func (r *Record) mealFields() []*string {
	return []*string{
		&r.MondayLunch, &r.MondayDinner,
		&r.TuesdayLunch, &r.TuesdayDinner,
		&r.WednesdayLunch, &r.WednesdayDinner,
		&r.ThursdayLunch, &r.ThursdayDinner,
		&r.FridayLunch, &r.FridayDinner,
		&r.SaturdayLunch, &r.SaturdayDinner,
		&r.SundayLunch, &r.SundayDinner,
	}
}

// NewRecord flattens a plan and its list. Absent meals become empty strings.
func NewRecord(plan MealPlan, list GroceryList) Record {
	rec := Record{GroceryList: list, CreatedAt: time.Now().UTC()}
	if plan.NumberOfPeople != nil {
		n := *plan.NumberOfPeople
		rec.NumberOfPeople = &n
	}

	fields := rec.mealFields()
	for i, day := range plan.Days() {
		*fields[2*i] = day.Meals.Lunch
		*fields[2*i+1] = day.Meals.Dinner
	}
	return rec
}

// MealPlan rebuilds the submitted plan from the flattened fields.
func (r Record) MealPlan() MealPlan {
	fields := r.mealFields()
	day := func(i int) *DayMeals {
		return &DayMeals{Lunch: *fields[2*i], Dinner: *fields[2*i+1]}
	}
	plan := MealPlan{
		Monday:    day(0),
		Tuesday:   day(1),
		Wednesday: day(2),
		Thursday:  day(3),
		Friday:    day(4),
		Saturday:  day(5),
		Sunday:    day(6),
	}
	if r.NumberOfPeople != nil {
		n := *r.NumberOfPeople
		plan.NumberOfPeople = &n
	}
	return plan
}

// Repository stores generated grocery lists. Records are write-once.
type Repository interface {
	// Save stores the pair and returns the new record ID.
	Save(ctx context.Context, plan MealPlan, list GroceryList) (int64, error)
	// Get returns nil, nil when no record has the given ID.
	Get(ctx context.Context, id int64) (*Record, error)
	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]Record, error)
}

// MemoryRepository keeps records in process memory. IDs start at 1.
type MemoryRepository struct {
	mu      sync.Mutex
	records map[int64]Record
	nextID  int64
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records: make(map[int64]Record),
		nextID:  1,
	}
}

func (m *MemoryRepository) Save(_ context.Context, plan MealPlan, list GroceryList) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := NewRecord(plan, list)
	rec.ID = m.nextID
	m.nextID++
	m.records[rec.ID] = rec
	return rec.ID, nil
}

func (m *MemoryRepository) Get(_ context.Context, id int64) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *MemoryRepository) List(_ context.Context, limit int) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := make([]Record, 0, len(m.records))
	for _, rec := range m.records {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID > records[j].ID })
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
