package notifications

import (
	"fmt"
	"html"
	"time"
)

type Email struct {
	Subject string
	HTML    string
}

func SwapRequested(providerName, requesterName, offered, wanted string) Email {
	return Email{
		Subject: fmt.Sprintf("%s wants to swap skills with you", requesterName),
		HTML: fmt.Sprintf(
			"<h1>New swap request</h1><p>Hi %s,</p><p>%s offers to teach you <b>%s</b> in exchange for learning <b>%s</b>.</p><p>Open SkillSwap to accept or decline.</p>",
			html.EscapeString(providerName), html.EscapeString(requesterName),
			html.EscapeString(offered), html.EscapeString(wanted),
		),
	}
}

func SwapAccepted(requesterName, providerName string) Email {
	return Email{
		Subject: fmt.Sprintf("%s accepted your swap request", providerName),
		HTML: fmt.Sprintf(
			"<h1>Swap accepted</h1><p>Hi %s,</p><p>%s accepted your swap. You can now schedule your first session.</p>",
			html.EscapeString(requesterName), html.EscapeString(providerName),
		),
	}
}

func SessionReminder(name, title string, at time.Time, link *string) Email {
	join := "<p>The meeting link will be shared by your partner.</p>"
	if link != nil && *link != "" {
		join = fmt.Sprintf("<p><b>Meeting link:</b> <a href='%s'>Join session</a></p>", html.EscapeString(*link))
	}
	return Email{
		Subject: "Reminder: your session starts in 1 hour",
		HTML: fmt.Sprintf(
			"<h1>Session reminder</h1><p>Hi %s,</p><p><b>%s</b> starts at %s UTC.</p>%s",
			html.EscapeString(name), html.EscapeString(title), at.UTC().Format("15:04 on Jan 2"), join,
		),
	}
}
