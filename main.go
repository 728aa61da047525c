package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vuminhle/fossildeck/app"
	"github.com/vuminhle/fossildeck/infra/config"
	"github.com/vuminhle/fossildeck/infra/editor"
	"github.com/vuminhle/fossildeck/infra/museum"
	"github.com/vuminhle/fossildeck/infra/session"
	"github.com/vuminhle/fossildeck/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliInvalid
)

// parseCLIArgs accepts an optional positional fossil ID, the payload of a
// scanned exhibit QR code, which opens that specimen directly.
func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	}

	if len(args) == 1 && !strings.HasPrefix(args[0], "-") {
		return cliRun, args[0]
	}
	return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
}

func usage() string {
	return "Usage: fossildeck [fossil-id] [--version|-version|-v] [--help|-h]"
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func main() {
	mode, arg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("FossilDeck %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", arg, usage())
		os.Exit(2)
	}

	// 1. Load config from environment.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// 2. Build infrastructure. The session store doubles as the museum
	// client's token provider, so login immediately authenticates requests.
	sess := session.NewStore()
	cache := session.NewFileCache(cfg.SessionPath)
	if snap, err := cache.Load(); err == nil && snap.LoggedIn() {
		sess.Set(snap.Token, snap.UserID)
	}
	sess.OnChange(func(snap session.Snapshot) {
		_ = cache.Save(snap)
	})
	client := museum.NewClient(cfg.APIBaseURL, cfg.Language, sess)

	// 3. Build services (concrete types satisfy app.* interfaces).
	catalogSvc := museum.NewCatalogService(client)
	commentSvc := museum.NewCommentService(client)
	reactionSvc := museum.NewReactionService(client)
	accountSvc := museum.NewAccountService(client)
	favoriteSvc := museum.NewFavoriteService(client)
	toggler := app.NewFavoriteToggler(favoriteSvc, sess)
	editorSvc := editor.NewEnvEditor()

	// 4. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Catalog:       catalogSvc,
		Comments:      commentSvc,
		Reactions:     reactionSvc,
		Account:       accountSvc,
		Favorites:     toggler,
		Session:       sess,
		Editor:        editorSvc,
		StartFossilID: arg,
	})

	// 5. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "fossildeck: %v\n", err)
		os.Exit(1)
	}
}
