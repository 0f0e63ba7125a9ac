package habits

import (
	"strings"
	"testing"
	"time"
)

func newWizard() *WizardState {
	return &WizardState{
		State:     StateIdentity,
		Draft:     &Draft{},
		ExpiresAt: time.Now().Add(wizardTTL),
	}
}

func TestWizardFullWalk(t *testing.T) {
	w := newWizard()

	steps := []struct {
		input     string
		wantState string
	}{
		{"бегун", StateTitle},
		{"Пробежать 1 км", StateCue},
		{"после чистки зубов", StateFrequency},
		{"пн, ср, пт", StateNone},
	}

	for i, step := range steps {
		next, err := w.ApplyInput(step.input)
		if err != nil {
			t.Fatalf("шаг %d: %v", i, err)
		}
		if next != step.wantState {
			t.Fatalf("шаг %d: state = %q, want %q", i, next, step.wantState)
		}
	}

	if !w.Done() {
		t.Fatal("мастер прошёл все шаги, но Done() = false")
	}
	if w.Draft.Identity != "бегун" || w.Draft.Title != "Пробежать 1 км" {
		t.Errorf("черновик собран неверно: %+v", w.Draft)
	}
	if len(w.Draft.Frequency) != 3 {
		t.Errorf("частота = %v, want 3 дня", w.Draft.Frequency)
	}
}

func TestWizardRejectsEmptyField(t *testing.T) {
	w := newWizard()

	if _, err := w.ApplyInput("   "); err == nil {
		t.Fatal("пустая идентичность принята")
	}
	// Состояние не сдвинулось
	if w.State != StateIdentity {
		t.Errorf("state = %q после отклонённого ввода", w.State)
	}
}

func TestWizardRejectsTooLongField(t *testing.T) {
	w := newWizard()

	long := strings.Repeat("а", maxFieldLen+1)
	if _, err := w.ApplyInput(long); err == nil {
		t.Fatal("слишком длинное поле принято")
	}

	// Ровно на границе — принимается
	ok := strings.Repeat("а", maxFieldLen)
	if _, err := w.ApplyInput(ok); err != nil {
		t.Fatalf("поле на границе длины отклонено: %v", err)
	}
}

func TestWizardRejectsBadFrequency(t *testing.T) {
	w := newWizard()
	w.ApplyInput("бегун")
	w.ApplyInput("Пробежать 1 км")
	w.ApplyInput("после чистки зубов")

	if _, err := w.ApplyInput("блаблабла"); err == nil {
		t.Fatal("некорректная частота принята")
	}
	if w.State != StateFrequency {
		t.Errorf("state = %q, мастер должен остаться на шаге частоты", w.State)
	}
	if w.Done() {
		t.Error("Done() = true при незавершённом мастере")
	}
}

func TestWizardPromptsNotEmpty(t *testing.T) {
	states := []string{StateIdentity, StateTitle, StateCue, StateFrequency}
	for _, st := range states {
		w := &WizardState{State: st, Draft: &Draft{}}
		if w.Prompt() == "" {
			t.Errorf("пустой prompt для состояния %q", st)
		}
	}
}

func TestServiceStateTTL(t *testing.T) {
	s := NewService(nil)
	s.setState(1, &WizardState{
		State:     StateIdentity,
		Draft:     &Draft{},
		ExpiresAt: time.Now().Add(-time.Minute), // уже истекло
	})

	if got := s.GetState(1); got != nil {
		t.Error("истёкшее состояние должно считаться отсутствующим")
	}
}

func TestServiceStartAndClear(t *testing.T) {
	s := NewService(nil)

	state := s.StartCreateWizard(42)
	if state.State != StateIdentity {
		t.Errorf("мастер стартует с %q, want %q", state.State, StateIdentity)
	}
	if s.GetState(42) == nil {
		t.Fatal("состояние не сохранилось")
	}

	s.ClearState(42)
	if s.GetState(42) != nil {
		t.Error("состояние не сброшено")
	}
}

func TestStartEditWizardPrefillsDraft(t *testing.T) {
	s := NewService(nil)
	h := &Habit{
		Title:     "Пробежать 1 км",
		Identity:  "бегун",
		Cue:       "после чистки зубов",
		Frequency: []string{"Mon", "Wed"},
	}

	state := s.StartEditWizard(42, h)

	if state.Draft.HabitID == nil {
		t.Fatal("редактирование должно запоминать ID протокола")
	}
	if state.Draft.Title != h.Title || state.Draft.Identity != h.Identity {
		t.Errorf("черновик не предзаполнен: %+v", state.Draft)
	}

	// Частота копируется, а не шарится
	state.Draft.Frequency[0] = "Sun"
	if h.Frequency[0] != "Mon" {
		t.Error("черновик шарит срез частоты с протоколом")
	}
}
