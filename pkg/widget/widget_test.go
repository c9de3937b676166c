package widget

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/signin-widget/pkg/display"
	"github.com/mmcdole/signin-widget/pkg/logging"
	"github.com/mmcdole/signin-widget/pkg/rank"
	"github.com/mmcdole/signin-widget/pkg/referral"
	"github.com/mmcdole/signin-widget/pkg/tasks"
)

type brokenSurface struct{}

func (brokenSurface) Show(string) error { return errors.New("display detached") }

type brokenSource struct{}

func (brokenSource) LoadTasks() ([]tasks.Task, error) { return nil, errors.New("no tasks today") }

func newTestWidget(t *testing.T) (*Widget, *display.MemorySurface) {
	t.Helper()
	surface := display.NewMemorySurface()
	w, err := New(Config{Surface: surface})
	require.NoError(t, err)
	return w, surface
}

func metricsText(t *testing.T, w *Widget) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, w.Metrics().WriteText(&buf))
	return buf.String()
}

func TestNew(t *testing.T) {
	t.Run("requires a surface", func(t *testing.T) {
		_, err := New(Config{})
		assert.True(t, errors.Is(err, ErrNoSurface))
	})

	t.Run("fills defaults", func(t *testing.T) {
		w, _ := newTestWidget(t)
		assert.NotEmpty(t, w.Session())
		assert.Equal(t, 0, w.Tracker().Count())
		assert.Equal(t, rank.HighestMatch, w.Tracker().Policy())
		assert.NotNil(t, w.Metrics())
	})

	t.Run("sessions are distinct", func(t *testing.T) {
		a, _ := newTestWidget(t)
		b, _ := newTestWidget(t)
		assert.NotEqual(t, a.Session(), b.Session())
	})
}

func TestHandleSignIn(t *testing.T) {
	t.Run("three sign-ins from fresh", func(t *testing.T) {
		w, surface := newTestWidget(t)

		for i := 1; i <= 3; i++ {
			require.NoError(t, w.HandleSignIn())
			assert.Contains(t, surface.Text(), "rank is 'Unranked'")
		}
		assert.Equal(t, "Attendance recorded. You now have 3 sign-ins and your rank is 'Unranked'.", surface.Text())
		assert.Equal(t, 3, surface.Shown())

		text := metricsText(t, w)
		assert.Contains(t, text, "signinwidget_signins_total 3")
		assert.Contains(t, text, `signinwidget_actions_total{action="signin",status="success"} 3`)
	})

	t.Run("reaches highest qualifying rank", func(t *testing.T) {
		w, surface := newTestWidget(t)
		for i := 0; i < 250; i++ {
			require.NoError(t, w.HandleSignIn())
		}
		assert.Equal(t, "Attendance recorded. You now have 250 sign-ins and your rank is 'Gold'.", surface.Text())
	})

	t.Run("declared order policy", func(t *testing.T) {
		surface := display.NewMemorySurface()
		w, err := New(Config{
			Tracker: rank.NewTracker(rank.DefaultTable(), rank.DeclaredOrder),
			Surface: surface,
		})
		require.NoError(t, err)
		for i := 0; i < 100; i++ {
			require.NoError(t, w.HandleSignIn())
		}
		assert.Equal(t, "Attendance recorded. You now have 100 sign-ins and your rank is 'Bronze'.", surface.Text())
	})

	t.Run("surface failure still counts the sign-in", func(t *testing.T) {
		w, err := New(Config{Surface: brokenSurface{}})
		require.NoError(t, err)

		err = w.HandleSignIn()
		assert.Error(t, err)
		assert.Equal(t, 1, w.Tracker().Count())
		assert.Contains(t, metricsText(t, w), `signinwidget_actions_total{action="signin",status="error"} 1`)
	})
}

func TestHandleReferralLink(t *testing.T) {
	t.Run("simulated user", func(t *testing.T) {
		w, surface := newTestWidget(t)
		require.NoError(t, w.HandleReferralLink())
		assert.Equal(t, "Share this referral link with your friends: https://t.me/m2e2bot?start=12345", surface.Text())
	})

	t.Run("configured user", func(t *testing.T) {
		gen, err := referral.NewGenerator("ubicentbot", "777")
		require.NoError(t, err)
		surface := display.NewMemorySurface()
		w, err := New(Config{Referral: gen, Surface: surface})
		require.NoError(t, err)

		require.NoError(t, w.HandleReferralLink())
		assert.Equal(t, "Share this referral link with your friends: https://t.me/ubicentbot?start=777", surface.Text())
	})

	t.Run("does not touch the count", func(t *testing.T) {
		w, _ := newTestWidget(t)
		require.NoError(t, w.HandleReferralLink())
		assert.Equal(t, 0, w.Tracker().Count())
	})
}

func TestHandleViewTasks(t *testing.T) {
	t.Run("default tasks in order", func(t *testing.T) {
		w, surface := newTestWidget(t)
		require.NoError(t, w.HandleViewTasks())

		want := "Here are your active tasks:\n" +
			"Complete the survey: https://example.com/survey\n" +
			"Watch the tutorial video: https://example.com/video\n"
		assert.Equal(t, want, surface.Text())
	})

	t.Run("no tasks", func(t *testing.T) {
		surface := display.NewMemorySurface()
		w, err := New(Config{Tasks: tasks.NewMemorySource([]tasks.Task{}), Surface: surface})
		require.NoError(t, err)

		require.NoError(t, w.HandleViewTasks())
		assert.Equal(t, "You have no active tasks.", surface.Text())
	})

	t.Run("file tasks", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/tasks.json",
			[]byte(`[{"id": 7, "description": "Join the channel", "url": "https://t.me/example"}]`), 0644))

		surface := display.NewMemorySurface()
		w, err := New(Config{Tasks: tasks.NewFileSource(fs, "/tasks.json"), Surface: surface})
		require.NoError(t, err)

		require.NoError(t, w.HandleViewTasks())
		assert.Equal(t, "Here are your active tasks:\nJoin the channel: https://t.me/example\n", surface.Text())
	})

	t.Run("source failure leaves the display alone", func(t *testing.T) {
		surface := display.NewMemorySurface()
		w, err := New(Config{Tasks: brokenSource{}, Surface: surface})
		require.NoError(t, err)

		assert.Error(t, w.HandleViewTasks())
		assert.Equal(t, 0, surface.Shown())
	})
}

func TestDispatch(t *testing.T) {
	w, surface := newTestWidget(t)

	require.NoError(t, w.Dispatch("signin"))
	assert.True(t, strings.HasPrefix(surface.Text(), "Attendance recorded."))

	require.NoError(t, w.Dispatch(" Referral "))
	assert.True(t, strings.HasPrefix(surface.Text(), "Share this referral link"))

	require.NoError(t, w.Dispatch("TASKS"))
	assert.True(t, strings.HasPrefix(surface.Text(), "Here are your active tasks:"))

	err := w.Dispatch("dance")
	assert.True(t, errors.Is(err, ErrUnknownAction))
	assert.Equal(t, 3, surface.Shown())
	assert.Equal(t, 1, w.Tracker().Count())
}

func TestActionLog(t *testing.T) {
	orig := logging.Action
	t.Cleanup(func() { logging.Action = orig })

	var buf bytes.Buffer
	logging.Action = logging.NewWriterActionLogger(&buf)

	w, _ := newTestWidget(t)
	require.NoError(t, w.HandleSignIn())
	require.NoError(t, w.HandleViewTasks())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "op=signin session="+w.Session()+" status=success count=1 rank=Unranked")
	assert.Contains(t, lines[1], "op=tasks session="+w.Session()+" status=success tasks=2")
}
