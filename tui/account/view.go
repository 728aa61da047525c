package account

import (
	"strings"
	"time"

	"github.com/vuminhle/fossildeck/domain"
	"github.com/vuminhle/fossildeck/tui/common"
)

var tabLabels = [tabCount]string{"Favorites", "Comments", "Password"}

// View renders the account screen.
func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Render("FossilDeck")
	b.WriteString(title + "\n\n")

	parts := make([]string, tabCount)
	for i, label := range tabLabels {
		if tab(i) == m.active {
			parts[i] = common.SectionStyle.Render("[" + label + "]")
		} else {
			parts[i] = common.LabelStyle.Render(" " + label + " ")
		}
	}
	b.WriteString("  " + strings.Join(parts, " ") + "\n\n")

	if m.loading {
		b.WriteString("  " + m.spinner.View() + " Loading your account...\n")
		return b.String()
	}

	switch m.active {
	case tabFavorites:
		b.WriteString(m.renderFavorites())
	case tabHistory:
		b.WriteString(m.renderHistory())
	case tabPassword:
		b.WriteString(m.renderPasswordForm())
	}

	if m.err != nil {
		b.WriteString("\n  " + common.ErrorStyle.Render(domain.UserMessage(m.err)) + "\n")
	}
	b.WriteString(common.StatusBarStyle.Render("  tab switch · enter open · r refresh · ctrl+d log out · esc back"))
	return b.String()
}

func (m Model) renderFavorites() string {
	if len(m.favorites) == 0 {
		return common.TimestampStyle.Render("  No favorites yet. Press f on a specimen to bookmark it.") + "\n"
	}
	var b strings.Builder
	for i, f := range m.favorites {
		line := common.Truncate(f.Name, 40) + "  " + common.LabelStyle.Render(f.Origin)
		style := common.UnselectedStyle
		if i == m.cursor {
			style = common.SelectedStyle
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}

func (m Model) renderHistory() string {
	if len(m.history) == 0 {
		return common.TimestampStyle.Render("  You have not commented yet.") + "\n"
	}
	var b strings.Builder
	now := time.Now()
	for i, r := range m.history {
		header := common.LabelStyle.Render(r.FossilID) + " " +
			common.TimestampStyle.Render(common.RelativeTime(r.CreatedAt, now))
		content := common.ContentStyle.Render(common.Truncate(r.Content, 60))
		line := header + "\n" + content
		if r.Hidden {
			line += "\n" + common.HiddenNoticeStyle.Render("hidden by moderation")
		}
		style := common.UnselectedStyle
		if i == m.cursor {
			style = common.SelectedStyle
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}

func (m Model) renderPasswordForm() string {
	var b strings.Builder
	b.WriteString("  " + common.LabelStyle.Render("Current ") + m.form.oldPassword.View() + "\n")
	b.WriteString("  " + common.LabelStyle.Render("New     ") + m.form.newPassword.View() + "\n\n")
	if m.form.saving {
		b.WriteString("  " + m.spinner.View() + " Saving...\n")
	}
	if m.form.saved {
		b.WriteString("  " + common.SuccessStyle.Render("Password changed.") + "\n")
	}
	return b.String()
}
