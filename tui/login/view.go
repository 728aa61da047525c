package login

import (
	"strings"

	"github.com/vuminhle/fossildeck/domain"
	"github.com/vuminhle/fossildeck/tui/common"
)

// View renders the login or registration form.
func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Render("FossilDeck")
	heading := "Log in"
	if m.mode == modeRegister {
		heading = "Create account"
	}
	b.WriteString(title + "\n\n")
	b.WriteString("  " + common.SectionStyle.Render(heading) + "\n\n")

	b.WriteString("  " + common.LabelStyle.Render("Username ") + m.username.View() + "\n")
	if m.mode == modeRegister {
		b.WriteString("  " + common.LabelStyle.Render("Email    ") + m.email.View() + "\n")
	}
	b.WriteString("  " + common.LabelStyle.Render("Password ") + m.password.View() + "\n\n")

	if m.busy {
		b.WriteString("  " + m.spinner.View() + " Contacting the museum...\n")
	}
	if m.err != nil {
		b.WriteString("  " + common.ErrorStyle.Render(domain.UserMessage(m.err)) + "\n")
	}
	if m.notice != "" {
		b.WriteString("  " + common.SuccessStyle.Render(m.notice) + "\n")
	}

	toggle := "ctrl+r register"
	if m.mode == modeRegister {
		toggle = "ctrl+r back to login"
	}
	b.WriteString(common.StatusBarStyle.Render("  enter submit · tab next field · " + toggle + " · esc cancel"))
	return b.String()
}
