package widget

import (
	"errors"
	"fmt"
	"strings"

	golog "github.com/fclairamb/go-log"
	"github.com/google/uuid"

	"github.com/mmcdole/signin-widget/pkg/display"
	"github.com/mmcdole/signin-widget/pkg/logging"
	"github.com/mmcdole/signin-widget/pkg/metrics"
	"github.com/mmcdole/signin-widget/pkg/rank"
	"github.com/mmcdole/signin-widget/pkg/referral"
	"github.com/mmcdole/signin-widget/pkg/tasks"
)

// Action names a button the user can press
type Action string

const (
	ActionSignIn   Action = "signin"
	ActionReferral Action = "referral"
	ActionTasks    Action = "tasks"
)

var (
	// ErrUnknownAction is returned by Dispatch for unrecognized action names
	ErrUnknownAction = errors.New("unknown action")

	// ErrNoSurface is returned when a widget is created without a display surface
	ErrNoSurface = errors.New("widget requires a display surface")
)

// Config holds a widget's collaborators. Only Surface is required.
type Config struct {
	Tracker  *rank.Tracker       // defaults to the widget table, highest match
	Tasks    tasks.Source        // defaults to the built-in tasks
	Referral *referral.Generator // defaults to the simulated user
	Surface  display.Surface
	Metrics  *metrics.Collector // defaults to a private registry
	Logger   golog.Logger       // defaults to logging.App
}

// Widget turns button presses into messages on a display surface.
// One widget serves one session.
type Widget struct {
	session  string
	tracker  *rank.Tracker
	tasks    tasks.Source
	referral *referral.Generator
	surface  display.Surface
	metrics  *metrics.Collector
	log      golog.Logger
}

// New creates a widget with a fresh session id
func New(config Config) (*Widget, error) {
	if config.Surface == nil {
		return nil, ErrNoSurface
	}

	w := &Widget{
		session:  uuid.New().String(),
		tracker:  config.Tracker,
		tasks:    config.Tasks,
		referral: config.Referral,
		surface:  config.Surface,
		metrics:  config.Metrics,
		log:      config.Logger,
	}

	if w.tracker == nil {
		w.tracker = rank.NewTracker(rank.DefaultTable(), rank.HighestMatch)
	}
	if w.tasks == nil {
		w.tasks = tasks.NewMemorySource(nil)
	}
	if w.referral == nil {
		gen, err := referral.NewGenerator("", "")
		if err != nil {
			return nil, fmt.Errorf("creating referral generator: %w", err)
		}
		w.referral = gen
	}
	if w.metrics == nil {
		w.metrics = metrics.New(nil)
	}
	if w.log == nil {
		w.log = logging.App
	}
	w.log = w.log.With("session", w.session)

	w.log.Debug("Widget created",
		"rank_policy", w.tracker.Policy(),
		"ranks", w.tracker.Table().Len(),
		"bot", w.referral.Bot())
	return w, nil
}

// HandleSignIn records a sign-in and shows the new count and rank
func (w *Widget) HandleSignIn() error {
	count, current := w.tracker.RecordSignIn()
	w.metrics.ObserveSignIn(count)

	msg := fmt.Sprintf("Attendance recorded. You now have %d sign-ins and your rank is '%s'.", count, current)
	return w.show(ActionSignIn, msg, "count", count, "rank", current)
}

// HandleReferralLink shows the user's referral link
func (w *Widget) HandleReferralLink() error {
	link := w.referral.Link()
	msg := fmt.Sprintf("Share this referral link with your friends: %s", link)
	return w.show(ActionReferral, msg, "link", link)
}

// HandleViewTasks shows the active task list
func (w *Widget) HandleViewTasks() error {
	list, err := w.tasks.LoadTasks()
	if err != nil {
		w.fail(ActionTasks, err)
		return fmt.Errorf("loading tasks: %w", err)
	}
	return w.show(ActionTasks, tasks.Render(list), "tasks", len(list))
}

// Dispatch runs the handler for a named action
func (w *Widget) Dispatch(name string) error {
	action, err := ParseAction(name)
	if err != nil {
		w.log.Debug("Ignoring unknown action", "action", name)
		return err
	}

	switch action {
	case ActionSignIn:
		return w.HandleSignIn()
	case ActionReferral:
		return w.HandleReferralLink()
	default:
		return w.HandleViewTasks()
	}
}

// Session returns the widget's session id
func (w *Widget) Session() string {
	return w.session
}

// Tracker returns the widget's rank tracker
func (w *Widget) Tracker() *rank.Tracker {
	return w.tracker
}

// Metrics returns the widget's metrics collector
func (w *Widget) Metrics() *metrics.Collector {
	return w.metrics
}

func (w *Widget) show(action Action, msg string, details ...interface{}) error {
	if err := w.surface.Show(msg); err != nil {
		w.fail(action, err)
		return fmt.Errorf("showing %s result: %w", action, err)
	}

	w.metrics.ObserveAction(string(action), "success")
	logging.Action.LogAction(string(action), w.session, "success", details...)
	w.log.Debug("Action handled", append([]interface{}{"action", action}, details...)...)
	return nil
}

func (w *Widget) fail(action Action, err error) {
	w.metrics.ObserveAction(string(action), "error")
	logging.Action.LogAction(string(action), w.session, "error", "error", err)
	w.log.Error("Action failed", "action", action, "error", err)
}

// ParseAction maps user input to an Action
func ParseAction(name string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "signin", "sign-in", "sign_in":
		return ActionSignIn, nil
	case "referral", "refer", "link":
		return ActionReferral, nil
	case "tasks", "task":
		return ActionTasks, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
}
