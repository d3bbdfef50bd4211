package printer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/whosfree/internal/models"
	"github.com/julianstephens/whosfree/internal/timetable"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	oldOut, oldErr, oldNoColor := Output, ErrOutput, color.NoColor
	Output, ErrOutput, color.NoColor = &out, &errOut, true
	t.Cleanup(func() { Output, ErrOutput, color.NoColor = oldOut, oldErr, oldNoColor })
	return &out, &errOut
}

func TestError(t *testing.T) {
	t.Run("returns error with title", func(t *testing.T) {
		_, errOut := capture(t)
		err := Error("Test Error", "This is a test error", nil)
		require.Error(t, err)
		require.Equal(t, "Test Error", err.Error())
		require.Contains(t, errOut.String(), "This is a test error")
	})

	t.Run("numbers multiple suggestions", func(t *testing.T) {
		_, errOut := capture(t)
		err := Error("Test Error", "Explanation", []string{"First option", "Second option"})
		require.Error(t, err)
		require.Contains(t, errOut.String(), "  2. Second option")
	})
}

func TestColorFor(t *testing.T) {
	tests := []struct {
		tag  string
		want *color.Color
	}{
		{"blue", color.New(color.FgBlue)},
		{"DarkGreen", color.New(color.FgGreen, color.Bold)},
		{" teal ", color.New(color.FgCyan)},
		{"chartreuse", color.New(color.Reset)},
		{"", color.New(color.Reset)},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			require.True(t, ColorFor(tt.tag).Equals(tt.want), "tag %q", tt.tag)
		})
	}
}

func TestFreeAndLessons(t *testing.T) {
	t.Run("empty states", func(t *testing.T) {
		out, _ := capture(t)
		Free(timetable.Availability{})
		Lessons(timetable.Availability{})
		require.Contains(t, out.String(), "No one free right now.")
		require.Contains(t, out.String(), "No one is in a lesson right now.")
	})

	t.Run("groups by subject", func(t *testing.T) {
		out, _ := capture(t)
		a := timetable.Availability{
			Free: []models.Person{{ID: "ava", Name: "Ava"}},
			Busy: []timetable.BusyBucket{
				{Subject: "Maths", People: []models.Person{{ID: "liam", Name: "Liam"}, {ID: "noah", Name: "Noah"}}},
				{Subject: "Art", People: []models.Person{{ID: "mia", Name: "Mia"}}},
			},
		}
		Free(a)
		Lessons(a)

		text := out.String()
		require.Contains(t, text, "Free right now:")
		require.Contains(t, text, "■ Ava")
		require.Less(t, strings.Index(text, "Maths"), strings.Index(text, "Art"))
		require.Less(t, strings.Index(text, "Liam"), strings.Index(text, "Noah"))
	})
}

func TestDay(t *testing.T) {
	engine, err := timetable.New(models.DefaultSettings())
	require.NoError(t, err)

	snapshot := models.Snapshot{
		"liam": {"Week 1": {"Monday": {"Maths", "Free", "Art"}}},
	}
	liam := models.Person{ID: "liam", Name: "Liam", Color: "blue"}

	t.Run("found", func(t *testing.T) {
		out, _ := capture(t)
		Day(liam, engine.BuildDayView(snapshot, "liam", "Week 1", "Monday"))
		text := out.String()
		require.Contains(t, text, "Liam's Schedule for Week 1, Monday")
		require.Contains(t, text, "(Free)")
		require.Contains(t, text, "Period 3")
	})

	t.Run("no schedule", func(t *testing.T) {
		out, _ := capture(t)
		Day(liam, engine.BuildDayView(snapshot, "liam", "Week 2", "Monday"))
		require.Contains(t, out.String(), "No schedule found for Liam on Monday.")
	})
}

func TestSuccessPrefix(t *testing.T) {
	out, _ := capture(t)
	Success("Saved")
	Success("✓ Already prefixed")
	require.Equal(t, "✓ Saved\n✓ Already prefixed\n", out.String())
}
