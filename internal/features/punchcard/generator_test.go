package punchcard

import (
	"strings"
	"testing"
	"time"
)

// 2026-03-01 — воскресенье, 2026-03-02 — понедельник.
var (
	sunday  = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tuesday = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
)

func TestGenerateDaily(t *testing.T) {
	// Без маски: все 10 дней от создания до сегодня включительно
	slots := Generate(sunday, nil, []time.Time{sunday, tuesday}, tuesday)

	if len(slots) != 10 {
		t.Fatalf("len(slots) = %d, want 10", len(slots))
	}
	if !slots[0].Date.Equal(sunday) {
		t.Errorf("первая ячейка %v, want %v", slots[0].Date, sunday)
	}
	if !slots[0].Punched || !slots[9].Punched {
		t.Error("крайние дни должны быть отмечены")
	}
	if slots[1].Punched {
		t.Error("неотмеченный день помечен как выполненный")
	}
}

func TestGenerateWeekdayMask(t *testing.T) {
	// Маска «только понедельник» на окне 01.03–10.03: Пн 2-го и Пн 9-го
	slots := Generate(sunday, []string{"Mon"}, nil, tuesday)

	if len(slots) != 2 {
		t.Fatalf("len(slots) = %d, want 2", len(slots))
	}
	want := []string{"2026-03-02", "2026-03-09"}
	for i, s := range slots {
		if got := s.Date.Format("2006-01-02"); got != want[i] {
			t.Errorf("slots[%d].Date = %s, want %s", i, got, want[i])
		}
	}
}

func TestGenerateUnknownCodesIgnored(t *testing.T) {
	// Неизвестный код в хранимой маске не валит генерацию
	slots := Generate(sunday, []string{"Mon", "Funday"}, nil, tuesday)
	if len(slots) != 2 {
		t.Errorf("len(slots) = %d, want 2 (как с маской из одного Mon)", len(slots))
	}

	// Маска из ОДНИХ неизвестных кодов схлопывается в «ежедневно»
	slots = Generate(sunday, []string{"Funday"}, nil, tuesday)
	if len(slots) != 10 {
		t.Errorf("len(slots) = %d, want 10", len(slots))
	}
}

func TestGenerateCreatedToday(t *testing.T) {
	slots := Generate(tuesday, nil, nil, tuesday)
	if len(slots) != 1 {
		t.Fatalf("len(slots) = %d, want 1", len(slots))
	}
	if !slots[0].Date.Equal(tuesday) {
		t.Errorf("единственная ячейка %v, want %v", slots[0].Date, tuesday)
	}
}

func TestGenerateFutureCreatedAt(t *testing.T) {
	slots := Generate(tuesday.AddDate(0, 0, 5), nil, nil, tuesday)
	if slots != nil {
		t.Errorf("ожидался пустой результат, получено %d ячеек", len(slots))
	}
}

func TestGenerateStable(t *testing.T) {
	logDays := []time.Time{sunday, sunday.AddDate(0, 0, 3)}

	a := Generate(sunday, nil, logDays, tuesday)
	b := Generate(sunday, nil, logDays, tuesday)

	if len(a) != len(b) {
		t.Fatal("повторный вызов дал другой размер")
	}
	for i := range a {
		if !a[i].Date.Equal(b[i].Date) || a[i].Punched != b[i].Punched {
			t.Fatalf("ячейка %d отличается между вызовами", i)
		}
	}
}

func TestDisplayOrder(t *testing.T) {
	slots := Generate(sunday, nil, nil, tuesday)
	display := DisplayOrder(slots)

	if !display[0].Date.Equal(tuesday) {
		t.Errorf("в порядке показа первой должна идти свежая ячейка")
	}
	// Исходный срез не тронут
	if !slots[0].Date.Equal(sunday) {
		t.Error("DisplayOrder изменил исходный срез")
	}
}

func TestRender(t *testing.T) {
	slots := Generate(sunday, nil, []time.Time{tuesday}, tuesday)
	out := Render("Пробежать 1 км", "2026-03-01", slots)

	if !strings.Contains(out, "ПРОБЕЖАТЬ 1 КМ") {
		t.Error("заголовок не в верхнем регистре")
	}
	if !strings.Contains(out, "выполнено 1 из 10") {
		t.Errorf("нет сводки отметок:\n%s", out)
	}
	// Первая строка сетки начинается со свежего (отмеченного) дня
	lines := strings.Split(out, "\n")
	grid := lines[3]
	if !strings.HasPrefix(grid, punchedMark) {
		t.Errorf("свежая отметка не первая в сетке: %q", grid)
	}
}

func TestRenderEmpty(t *testing.T) {
	out := Render("Тест", "2026-03-01", nil)
	if !strings.Contains(out, "ни одной запланированной ячейки") {
		t.Errorf("неожиданный текст для пустого панчкарда: %q", out)
	}
}
