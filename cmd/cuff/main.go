// Package main is the cuff command line app. It shows the leftover food feed, manages the
// preferences of the device and lets administrators post and delete events.
//
// Usage:
//
//	cuff feed
//	cuff notifications
//	cuff prefs [flag=true|false ...] [-type None|Email|SMS|Both]
//	cuff admin
//	cuff post -title T -from 2026-03-02T12:00 -until 2026-03-02T14:00 [-location L] [-description D] [-diet S] [-image URL]
//	cuff delete ID
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	cuffLog "github.com/cuff-app/cuff/internal/log"
	"github.com/cuff-app/cuff/pkg/client"
	"github.com/cuff-app/cuff/pkg/config"
	"github.com/cuff-app/cuff/pkg/dashboard"
	"github.com/cuff-app/cuff/pkg/model"
	"github.com/cuff-app/cuff/pkg/prefstore"
	"github.com/cuff-app/cuff/pkg/session"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

type app struct {
	out         io.Writer
	logger      *slog.Logger
	client      *client.Client
	session     *session.Session
	home        *dashboard.Home
	admin       *dashboard.Admin
	preferences *dashboard.Preferences
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("missing command, want one of feed, notifications, prefs, admin, post, delete")
	}

	cfg, err := config.NewClient()
	if err != nil {
		return err
	}

	logger := slog.New(cuffLog.New(cuffLog.NewPrettyJSONHandler(os.Stderr, &cuffLog.PrettyJSONHandlerOptions{
		HandlerOptions: slog.HandlerOptions{Level: slog.LevelWarn},
	})))

	store, err := prefstore.Open(cfg.PrefsPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close preference store", "error", err)
		}
	}()

	apiClient := client.New(cfg.APIURL, &http.Client{Timeout: cfg.Timeout})
	s := session.New(logger, apiClient)

	a := app{
		out:         out,
		logger:      logger,
		client:      apiClient,
		session:     s,
		home:        dashboard.NewHome(logger, apiClient, store, s),
		admin:       dashboard.NewAdmin(logger, apiClient, s, time.Local),
		preferences: dashboard.NewPreferences(logger, store, apiClient, s, s),
	}

	ctx := context.Background()
	s.Load(ctx, cfg.Email)

	command, args := args[0], args[1:]
	switch command {
	case "feed":
		return a.feed(ctx)
	case "notifications":
		return a.notifications(ctx)
	case "prefs":
		return a.prefs(ctx, args)
	case "admin":
		return a.summary(ctx)
	case "post":
		return a.post(ctx, args)
	case "delete":
		return a.delete(ctx, args)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a app) feed(ctx context.Context) error {
	a.home.Load(ctx)
	view := a.home.View(time.Now())

	_, _ = fmt.Fprintf(a.out, "%d events, %d visible now, %d locations. Hidden for you: %s\n\n",
		view.Stats.TotalEvents, view.Stats.VisibleNow, view.Stats.UniqueLocations, view.HiddenFor)
	if len(view.Items) == 0 {
		_, _ = fmt.Fprintln(a.out, "No leftover food right now.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tLOCATION\tFROM\tUNTIL\tBADGES")
	for _, item := range view.Items {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			item.ID, item.Title, item.Location, item.AvailableFrom, item.AvailableUntil, strings.Join(item.Badges, ", "))
	}
	return w.Flush()
}

func (a app) notifications(ctx context.Context) error {
	userID, ok := a.session.State().UserID()
	if !ok {
		return errors.New("no CUFF user is signed in, set CUFF_EMAIL")
	}

	notifications, err := a.client.FetchNotificationsForUser(ctx, userID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "POST\tTYPE\tSTATUS\tMESSAGE")
	for _, n := range notifications {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", n.PostID, n.NotificationType, deref(n.Status), deref(n.MessageContent))
	}
	return w.Flush()
}

func (a app) prefs(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("prefs", flag.ContinueOnError)
	notificationType := flags.String("type", "", "notification type: None, Email, SMS or Both")
	if err := flags.Parse(args); err != nil {
		return err
	}

	a.preferences.Load(ctx)
	if *notificationType != "" {
		if _, err := a.preferences.SetNotificationType(ctx, *notificationType); err != nil {
			return err
		}
	}
	for _, arg := range flags.Args() {
		name, value, found := strings.Cut(arg, "=")
		enabled, err := strconv.ParseBool(value)
		if !found || err != nil {
			return fmt.Errorf("invalid preference %q, want name=true|false", arg)
		}
		if _, err := a.preferences.Toggle(ctx, name, enabled); err != nil {
			return err
		}
	}

	current := a.preferences.Current()
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "notificationType\t%s\n", current.NotificationType)
	for _, name := range model.FlagNames {
		_, _ = fmt.Fprintf(w, "%s\t%t\n", name, flagValue(current.Preferences, name))
	}
	return w.Flush()
}

func (a app) summary(ctx context.Context) error {
	if err := a.admin.Refresh(ctx, time.Now()); err != nil {
		return err
	}
	s := a.admin.Summary()

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Total events\t%d\n", s.TotalEvents)
	_, _ = fmt.Fprintf(w, "Active\t%d\n", s.ActiveEvents)
	_, _ = fmt.Fprintf(w, "Expired\t%d\n", s.ExpiredEvents)
	_, _ = fmt.Fprintf(w, "Locations\t%d\n", s.UniqueLocations)
	for _, l := range s.TopLocations {
		_, _ = fmt.Fprintf(w, "  %s\t%d\n", l.Location, l.Count)
	}
	_, _ = fmt.Fprintf(w, "Vegan\t%d\n", s.DietaryCounts.Vegan)
	_, _ = fmt.Fprintf(w, "Vegetarian\t%d\n", s.DietaryCounts.Vegetarian)
	_, _ = fmt.Fprintf(w, "Gluten free\t%d\n", s.DietaryCounts.GlutenFree)
	_, _ = fmt.Fprintf(w, "Nut free\t%d\n", s.DietaryCounts.NutFree)
	for _, b := range s.TimeBuckets {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", b.Label, b.Count)
	}
	return w.Flush()
}

func (a app) post(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("post", flag.ContinueOnError)
	title := flags.String("title", "", "title of the post")
	location := flags.String("location", "", "where the food is")
	description := flags.String("description", "", "what is left")
	diet := flags.String("diet", "", "dietary specification")
	from := flags.String("from", "", "start of the window, local time")
	until := flags.String("until", "", "end of the window, local time")
	image := flags.String("image", "", "image URL")
	if err := flags.Parse(args); err != nil {
		return err
	}

	form := dashboard.PostForm{
		Title:                *title,
		Location:             *location,
		Description:          *description,
		DietarySpecification: *diet,
		ImageURL:             *image,
	}
	var err error
	if form.AvailableFrom, err = parseTime("from", *from); err != nil {
		return err
	}
	if form.AvailableUntil, err = parseTime("until", *until); err != nil {
		return err
	}

	event, err := a.admin.Create(ctx, form)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.out, "Created event %d\n", event.ID)
	return nil
}

func (a app) delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: cuff delete ID")
	}
	id, err := strconv.ParseUint(args[0], 10, 0)
	if err != nil {
		return fmt.Errorf("invalid event id %q: %v", args[0], err)
	}

	if err := a.home.Delete(ctx, uint(id)); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.out, "Deleted event %d\n", id)
	return nil
}

// parseTime returns nil for an empty value so the form reports the missing time.
func parseTime(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, ok := model.ParseLocal(value, time.Local)
	if !ok {
		return nil, fmt.Errorf("invalid -%s %q, want e.g. %s", name, value, model.LocalTimeLayout)
	}
	return &t, nil
}

func flagValue(prefs model.Preferences, name string) bool {
	set, _ := prefs.With(name, true)
	return set == prefs
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
