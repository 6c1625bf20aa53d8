//go:build darwin

package menubar

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aayushbajaj/attend/internal/storage"
	"github.com/aayushbajaj/attend/pkg/stats"
	"github.com/caseymrm/menuet"
)

// SettingShowLongest toggles the longest streak next to the current one in
// the menu bar title.
const SettingShowLongest = "menubar_show_longest"

type App struct {
	store *storage.Store
}

func New(store *storage.Store) *App {
	return &App{store: store}
}

func (a *App) Run() {
	go a.updateLoop()

	menuet.App().Label = "com.attend.menubar"
	menuet.App().Children = a.menuItems

	menuet.App().RunApplication()
}

func (a *App) updateLoop() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		a.updateTitle()
		<-ticker.C
	}
}

func (a *App) now() time.Time {
	return time.Now().In(a.store.Location())
}

func (a *App) updateTitle() {
	streak, err := a.store.GetStreak(a.now())
	if err != nil {
		log.Printf("Failed to compute streak: %v", err)
		menuet.App().SetMenuState(&menuet.MenuState{
			Title: "🔥 --",
		})
		return
	}

	menuet.App().SetMenuState(&menuet.MenuState{
		Title: FormatTitle(streak, a.showLongest()),
	})
}

func (a *App) showLongest() bool {
	v, err := a.store.GetSetting(SettingShowLongest)
	return err == nil && v == "true"
}

func (a *App) menuItems() []menuet.MenuItem {
	now := a.now()
	streak, _ := a.store.GetStreak(now)

	var thisWeek int
	if weeks, err := a.store.GetWeeklyCounts(1, now); err == nil && len(weeks) == 1 {
		thisWeek = weeks[0].Completed
	}

	return []menuet.MenuItem{
		{
			Text: fmt.Sprintf("Current streak: %d", streak.Current),
		},
		{
			Text: fmt.Sprintf("Longest streak: %d", streak.Longest),
		},
		{
			Text: fmt.Sprintf("This week (from %s): %d sessions", stats.WeekStart(now).Format("Mon Jan 2"), thisWeek),
		},
		{
			Type: menuet.Separator,
		},
		{
			Text:    "Show Longest Streak",
			State:   a.showLongest(),
			Clicked: a.toggleLongest,
		},
		{
			Type: menuet.Separator,
		},
		{
			Text:    "Quit",
			Clicked: a.quit,
		},
	}
}

func (a *App) toggleLongest() {
	value := "true"
	if a.showLongest() {
		value = "false"
	}
	if err := a.store.SetSetting(SettingShowLongest, value); err != nil {
		log.Printf("Failed to save setting: %v", err)
	}
	a.updateTitle()
}

func (a *App) quit() {
	os.Exit(0)
}
