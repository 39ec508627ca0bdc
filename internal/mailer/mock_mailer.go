package mailer

import "sync"

// MockMailer records sent mails for assertions instead of delivering them.
type MockMailer struct {
	mu    sync.Mutex
	Mails []MockMail
}

type MockMail struct {
	Recipient    string
	TemplateFile string
	Data         any
}

func (m *MockMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Mails = append(m.Mails, MockMail{
		Recipient:    recipient,
		TemplateFile: templateFile,
		Data:         data,
	})

	return nil
}

func (m *MockMailer) Sent() []MockMail {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]MockMail(nil), m.Mails...)
}
