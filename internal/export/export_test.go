package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/utils"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func TestEnumerateDateKeys(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  []string
	}{
		{
			name:  "single day",
			start: day("2024-01-01"),
			end:   day("2024-01-01").Add(20 * time.Hour),
			want:  []string{"2024-01-01"},
		},
		{
			name:  "newest first across month boundary",
			start: day("2024-01-30"),
			end:   day("2024-02-02"),
			want:  []string{"2024-02-02", "2024-02-01", "2024-01-31", "2024-01-30"},
		},
		{
			name:  "start after end",
			start: day("2024-02-02"),
			end:   day("2024-01-30"),
			want:  []string{},
		},
		{
			name:  "start late and end early on the same day",
			start: day("2024-03-05").Add(23 * time.Hour),
			end:   day("2024-03-05").Add(time.Hour),
			want:  []string{"2024-03-05"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnumerateDateKeys(tt.start, tt.end)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("EnumerateDateKeys() = %v, want %v", got, tt.want)
			}
			if got == nil {
				t.Error("EnumerateDateKeys() returned nil, want empty slice")
			}
		})
	}
}

func TestEnumerateDateKeysLength(t *testing.T) {
	start := day("2023-11-20").Add(13 * time.Hour)
	for n := 0; n < 120; n += 7 {
		end := utils.AddDays(start, n)
		keys := EnumerateDateKeys(start, end)
		if len(keys) != n+1 {
			t.Fatalf("span %d: got %d keys, want %d", n, len(keys), n+1)
		}
		if keys[0] != utils.ToDateKey(end) || keys[len(keys)-1] != utils.ToDateKey(start) {
			t.Fatalf("span %d: bounds %s..%s", n, keys[0], keys[len(keys)-1])
		}
	}
}

func TestToMarkdownWithNote(t *testing.T) {
	h := models.Habit{
		ID:          "1",
		Name:        "Read",
		Description: "Before bed",
		Logs:        map[string]bool{"2024-01-02": true},
		Notes:       map[string]string{"2024-01-01": "felt sick"},
	}
	now := day("2024-01-05")

	md := ToMarkdown([]models.Habit{h}, day("2024-01-01"), day("2024-01-02"), now)

	if !strings.HasPrefix(md, "# Habit Tracker Summary (Generated 2024-01-05)\nRange: 2024-01-01 to 2024-01-02\n\n") {
		t.Errorf("unexpected header:\n%s", md)
	}
	if !strings.Contains(md, "## Read\n> Before bed\n\n**Checklist:**\n") {
		t.Errorf("missing habit section:\n%s", md)
	}

	var checklist []string
	for _, line := range strings.Split(md, "\n") {
		if strings.HasPrefix(line, "- [") {
			checklist = append(checklist, line)
		}
	}
	if len(checklist) != 2 {
		t.Fatalf("expected 2 checklist lines, got %d: %v", len(checklist), checklist)
	}
	if checklist[0] != "- [x] 2024-01-02" {
		t.Errorf("first line = %q", checklist[0])
	}
	if checklist[1] != "- [ ] 2024-01-01 — *felt sick*" {
		t.Errorf("second line = %q", checklist[1])
	}
	if !strings.HasSuffix(md, "\n---\n") {
		t.Error("expected section separator at the end")
	}
}

func TestToMarkdownEmpty(t *testing.T) {
	md := ToMarkdown(nil, day("2024-01-01"), day("2024-01-31"), day("2024-02-01"))
	if !strings.Contains(md, "No habits found.") {
		t.Errorf("expected empty notice:\n%s", md)
	}
	if strings.Contains(md, "Checklist") {
		t.Error("empty document must not contain a checklist heading")
	}
}

func TestToMarkdownReversedRange(t *testing.T) {
	h := models.Habit{ID: "1", Name: "Read", Logs: map[string]bool{}, Notes: map[string]string{}}
	md := ToMarkdown([]models.Habit{h}, day("2024-02-01"), day("2024-01-01"), day("2024-02-01"))
	if strings.Contains(md, "- [") {
		t.Errorf("reversed range should have no checklist lines:\n%s", md)
	}
}

func TestToCSV(t *testing.T) {
	habits := []models.Habit{
		{
			ID:    "1",
			Name:  `Read "Dune"`,
			Logs:  map[string]bool{"2024-01-02": true},
			Notes: map[string]string{"2024-01-02": `said "wow", then slept`},
		},
		{ID: "2", Name: "Run", Logs: map[string]bool{}, Notes: map[string]string{}},
	}

	got := ToCSV(habits, day("2024-01-01"), day("2024-01-02"))
	want := strings.Join([]string{
		"Date,Habit Name,Status,Note",
		`2024-01-02,"Read ""Dune""",Completed,"said ""wow"", then slept"`,
		`2024-01-01,"Read ""Dune""",Missed,""`,
		`2024-01-02,"Run",Missed,""`,
		`2024-01-01,"Run",Missed,""`,
	}, "\n") + "\n"

	if got != want {
		t.Errorf("ToCSV() =\n%s\nwant\n%s", got, want)
	}
}

func TestToCSVEmpty(t *testing.T) {
	if got := ToCSV(nil, day("2024-01-01"), day("2024-01-05")); got != "Date,Habit Name,Status,Note\n" {
		t.Errorf("ToCSV(no habits) = %q", got)
	}
	h := models.Habit{ID: "1", Name: "Read", Logs: map[string]bool{}, Notes: map[string]string{}}
	if got := ToCSV([]models.Habit{h}, day("2024-01-05"), day("2024-01-01")); got != "Date,Habit Name,Status,Note\n" {
		t.Errorf("ToCSV(reversed) = %q", got)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	habits := []models.Habit{
		{
			ID:    "1",
			Name:  "Read, daily",
			Logs:  map[string]bool{"2024-02-27": true, "2024-03-01": true, "2024-01-01": true},
			Notes: map[string]string{"2024-02-28": "line one\nline two"},
		},
		{
			ID:    "2",
			Name:  `Stretch "10 min"`,
			Logs:  map[string]bool{"2024-02-29": true},
			Notes: map[string]string{},
		},
	}
	start, end := day("2024-02-25"), day("2024-03-02")

	parsed, err := ParseCSVStatus(strings.NewReader(ToCSV(habits, start, end)))
	if err != nil {
		t.Fatalf("ParseCSVStatus() error = %v", err)
	}

	for _, h := range habits {
		rows := parsed[h.Name]
		for _, key := range EnumerateDateKeys(start, end) {
			done, ok := rows[key]
			if !ok {
				t.Fatalf("%s: missing row for %s", h.Name, key)
			}
			if done != h.IsDone(key) {
				t.Errorf("%s on %s: parsed %v, logs %v", h.Name, key, done, h.IsDone(key))
			}
		}
		if len(rows) != 7 {
			t.Errorf("%s: expected 7 rows, got %d", h.Name, len(rows))
		}
	}
}

func TestParseCSVStatusErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"bad header", "Day,Name,Status,Note\n"},
		{"bad status", "Date,Habit Name,Status,Note\n2024-01-01,\"Read\",Skipped,\"\"\n"},
		{"bad date", "Date,Habit Name,Status,Note\n01/01/2024,\"Read\",Missed,\"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCSVStatus(strings.NewReader(tt.doc)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(nil)
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("ToJSON(nil) = %s, want []", data)
	}

	h := models.Habit{ID: "1", Name: "Read", Logs: map[string]bool{"2024-01-01": true}, Notes: map[string]string{"2024-01-01": "ok"}, Category: models.CategoryLearning}
	data, err = ToJSON([]models.Habit{h})
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	var back []models.Habit
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("backup is not valid JSON: %v", err)
	}
	if len(back) != 1 || !back[0].IsDone("2024-01-01") || back[0].Notes["2024-01-01"] != "ok" {
		t.Errorf("backup lost data: %+v", back)
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 3, 7, 9, 5, 0, 0, time.Local)
	if got := Filename("habit-tracker-export", "csv", now); got != "habit-tracker-export-2024-03-07_09-05.csv" {
		t.Errorf("Filename() = %q", got)
	}
	if got := Filename("habit-tracker-backup", ".json", now); got != "habit-tracker-backup-2024-03-07_09-05.json" {
		t.Errorf("Filename() = %q", got)
	}
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")

	path, err := WriteFile(dir, "out.md", []byte("hello"))
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q", data)
	}
}
