package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vuminhle/fossildeck/domain"
	"github.com/vuminhle/fossildeck/tui/common"
)

var reactionGlyphs = map[domain.ReactionType]string{
	domain.ReactionLike:  "👍",
	domain.ReactionHeart: "❤️",
	domain.ReactionHaha:  "😂",
	domain.ReactionWow:   "😮",
	domain.ReactionSad:   "😢",
	domain.ReactionAngry: "😡",
}

// View renders the detail screen.
func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Render("FossilDeck")
	tagline := common.TaglineStyle.Render("<the museum in your terminal>")
	b.WriteString(title + tagline + "\n\n")

	if m.loading {
		b.WriteString("  " + m.spinner.View() + " Digging up the specimen...\n")
		return b.String()
	}
	if !m.hasFossil {
		if m.err != nil {
			b.WriteString("  " + common.ErrorStyle.Render(domain.UserMessage(m.err)) + "\n")
			b.WriteString(common.StatusBarStyle.Render("  r refresh · esc back"))
		}
		return b.String()
	}

	b.WriteString(m.renderFossilCard())
	b.WriteString(m.renderComments())

	if m.composing {
		b.WriteString("\n" + m.renderComposer())
	}
	if m.showReactions {
		b.WriteString("\n" + m.renderReactionPicker())
	}
	if m.promptLogin {
		b.WriteString("\n  " + common.PromptStyle.Render("Sign in to do that. Press enter to log in, any other key to dismiss."))
	}

	b.WriteString("\n" + m.renderStatusLine())
	return m.viewport(b.String())
}

func (m Model) renderFossilCard() string {
	f := m.fossil

	var card strings.Builder
	card.WriteString(lipgloss.NewStyle().Bold(true).Render(f.Name) + "\n")
	card.WriteString(common.LabelStyle.Render("Period: ") + common.ContentStyle.Render(f.Period))
	card.WriteString(common.LabelStyle.Render("   Origin: ") + common.ContentStyle.Render(f.Origin) + "\n")
	if f.Size != "" || f.Weight != "" {
		card.WriteString(common.LabelStyle.Render("Size: ") + common.ContentStyle.Render(f.Size))
		card.WriteString(common.LabelStyle.Render("   Weight: ") + common.ContentStyle.Render(f.Weight) + "\n")
	}
	if f.Description != "" {
		width := m.contentWidth()
		card.WriteString("\n" + common.ContentStyle.Width(width).Render(f.Description) + "\n")
	}
	if f.SpecialAbility != "" {
		card.WriteString(common.HiddenNoticeStyle.Render("✦ "+f.SpecialAbility) + "\n")
	}

	heart := "♡"
	if f.IsFavorited {
		heart = "♥"
	}
	card.WriteString("\n" + common.FavoriteStyle.Render(fmt.Sprintf("%s %d", heart, f.LikedCount)))
	if m.togglingFav {
		card.WriteString("  " + m.spinner.View())
	}
	if f.Model3DURL != "" {
		card.WriteString(common.TimestampStyle.Render("   o: open 3D model"))
	}

	style := common.UnselectedStyle
	if m.cursor == 0 {
		style = common.SelectedStyle
	}
	return style.Width(m.contentWidth() + 4).Render(card.String()) + "\n"
}

func (m Model) renderComments() string {
	var b strings.Builder

	b.WriteString("\n  " + common.SectionStyle.Render(fmt.Sprintf("Comments (%d)", domain.CountComments(m.comments))) + "\n")

	if m.loadingTree {
		b.WriteString("  " + m.spinner.View() + " Loading comments...\n")
		return b.String()
	}
	if len(m.rows) == 0 {
		b.WriteString(common.TimestampStyle.Render("  No comments yet. Press c to start the discussion.") + "\n")
		return b.String()
	}

	now := time.Now()
	for i, row := range m.rows {
		b.WriteString(m.renderCommentRow(row, i+1 == m.cursor, now))
	}
	return b.String()
}

func (m Model) renderCommentRow(row commentRow, selected bool, now time.Time) string {
	c := row.comment
	indent := strings.Repeat("  ", row.depth)
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color("#444444")).Render("┃ ")

	header := common.AuthorStyle.Render(c.Author.Username) + " " +
		common.TimestampStyle.Render(common.RelativeTime(c.CreatedAt, now))

	width := m.contentWidth() - row.depth*2
	content := common.ContentStyle.Render(common.Truncate(c.Content, width))

	var line strings.Builder
	line.WriteString("  " + indent + header + "\n")
	line.WriteString("  " + indent + bar + content + "\n")
	if meta := renderReactionCounts(c); meta != "" {
		line.WriteString("  " + indent + meta + "\n")
	}

	out := line.String()
	if selected {
		if m.confirmDelete {
			out += "  " + indent + common.ConfirmStyle.Render("Delete this comment? (y/n)") + "\n"
		}
		out = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Render(strings.TrimSuffix(out, "\n")) + "\n"
	}
	return out + "\n"
}

func renderReactionCounts(c domain.Comment) string {
	if len(c.Reactions) == 0 {
		return ""
	}
	parts := make([]string, 0, len(c.Reactions))
	for _, t := range domain.ReactionTypes() {
		n := c.Reactions[t]
		if n == 0 {
			continue
		}
		part := fmt.Sprintf("%s %d", reactionGlyphs[t], n)
		if c.UserReaction == t {
			part = common.FavoriteStyle.Render(part)
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return ""
	}
	return common.TimestampStyle.Render(strings.Join(parts, "  "))
}

func (m Model) renderComposer() string {
	var b strings.Builder
	if m.replyTo != nil {
		b.WriteString("  " + common.HiddenNoticeStyle.Render("↩ Replying to "+m.replyTo.Author.Username+" (esc to cancel)") + "\n")
	}
	b.WriteString("  " + m.input.View() + "\n")
	if m.posting {
		b.WriteString("  " + m.spinner.View() + " Posting...\n")
	} else {
		b.WriteString(common.StatusBarStyle.Render("  enter post · ctrl+e editor · esc close"))
	}
	return b.String()
}

func (m Model) renderReactionPicker() string {
	types := domain.ReactionTypes()
	parts := make([]string, len(types))
	for i, t := range types {
		glyph := reactionGlyphs[t] + " " + string(t)
		if i == m.reactionCursor {
			glyph = common.SelectedStyle.Padding(0).Render(glyph)
		}
		parts[i] = glyph
	}
	return "  " + strings.Join(parts, "  ") + "\n" +
		common.StatusBarStyle.Render("  ←/→ pick · enter react · esc close")
}

func (m Model) renderStatusLine() string {
	if m.err != nil {
		return common.ErrorStyle.Render("  " + domain.UserMessage(m.err))
	}
	if m.notice != "" {
		return common.SuccessStyle.Render("  " + m.notice)
	}
	return common.StatusBarStyle.Render("  c comment · R reply · e react · d delete · f favorite · r refresh · esc back")
}

func (m Model) contentWidth() int {
	if m.width == 0 {
		return 72
	}
	w := m.width - 8
	if w > 90 {
		w = 90
	}
	if w < 30 {
		w = 30
	}
	return w
}

// viewport clips rendered output to the terminal height, keeping markers
// when content continues past an edge.
func (m Model) viewport(content string) string {
	lines := strings.Split(content, "\n")
	if m.height <= 0 || len(lines) <= m.height {
		return content
	}
	viewHeight := m.height
	start := m.start
	if start > len(lines)-viewHeight {
		start = len(lines) - viewHeight
	}
	if start < 0 {
		start = 0
	}
	visible := lines[start : start+viewHeight]
	out := make([]string, len(visible))
	copy(out, visible)
	if start > 0 {
		out[0] = common.TimestampStyle.Render("▲ more above")
	}
	if start+viewHeight < len(lines) {
		out[len(out)-1] = common.TimestampStyle.Render("▼ more below")
	}
	return strings.Join(out, "\n")
}
