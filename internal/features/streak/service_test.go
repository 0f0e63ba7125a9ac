package streak

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"serotonyl.ru/habit-sys/internal/common"
)

// fakeLogSource отдаёт заранее заданные дни отметок.
type fakeLogSource struct {
	days []time.Time
	err  error
}

func (f *fakeLogSource) LogDays(ctx context.Context, habitID uuid.UUID, userID int64) ([]time.Time, error) {
	return f.days, f.err
}

func TestCurrentForHabit(t *testing.T) {
	todayDay := common.Today()
	src := &fakeLogSource{days: []time.Time{
		todayDay,
		todayDay.AddDate(0, 0, -1),
		todayDay.AddDate(0, 0, -2),
	}}

	s := NewService(src)
	got, err := s.CurrentForHabit(context.Background(), uuid.New(), 1)
	if err != nil {
		t.Fatalf("CurrentForHabit: %v", err)
	}
	if got != 3 {
		t.Errorf("огонек = %d, want 3", got)
	}
}

func TestCurrentForHabitEmpty(t *testing.T) {
	s := NewService(&fakeLogSource{})
	got, err := s.CurrentForHabit(context.Background(), uuid.New(), 1)
	if err != nil {
		t.Fatalf("CurrentForHabit: %v", err)
	}
	if got != 0 {
		t.Errorf("огонек = %d, want 0", got)
	}
}
