package notify

import (
	"fmt"
	"html"

	"github.com/spec-kit/leads-service/internal/domain"
)

const (
	phoneNotProvided = "Не указан"
	dateLayout       = "02.01.2006 15:04:05 UTC"
)

// FormatLead renders the operator message for a new lead as Telegram HTML.
// Client-supplied values are escaped.
func FormatLead(lead domain.Lead) string {
	phone := phoneNotProvided
	if lead.Phone != nil {
		phone = *lead.Phone
	}
	return fmt.Sprintf(`🔔 <b>Новая заявка!</b>

👤 <b>Имя:</b> %s
📧 <b>Email:</b> %s
📱 <b>Телефон:</b> %s
💬 <b>Сообщение:</b>
%s

🌍 <b>Страна:</b> %s
🌐 <b>IP:</b> %s
📅 <b>Дата:</b> %s
`,
		html.EscapeString(lead.Name),
		html.EscapeString(lead.Email),
		html.EscapeString(phone),
		html.EscapeString(lead.Message),
		html.EscapeString(orUnknown(lead.Country)),
		html.EscapeString(orUnknown(lead.IPAddress)),
		lead.CreatedAt.UTC().Format(dateLayout),
	)
}

func orUnknown(p *string) string {
	if p == nil {
		return domain.Unknown
	}
	return *p
}
