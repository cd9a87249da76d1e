package ui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/petdesk/internal/pets"
)

// Form field indexes.
const (
	fieldName = iota
	fieldType
	fieldPrice
	fieldDescription
	fieldImage
	fieldCount
)

// maxImageSize bounds image files read from disk for upload.
const maxImageSize = 8 << 20

var fieldLabels = [fieldCount]string{"Name", "Type", "Price", "Description", "Image file"}

// formState holds the add-pet form.
type formState struct {
	inputs   [fieldCount]textinput.Model
	focusIdx int
	errField int // -1 when the error is not tied to a field
	err      string
}

func newFormState() formState {
	var f formState
	placeholders := [fieldCount]string{
		"Rex",
		strings.Join(typeNames(), ", "),
		"100",
		"optional",
		"optional path to a png, jpg or gif",
	}
	limits := [fieldCount]int{64, 16, 16, 256, 512}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		ti.Prompt = ""
		ti.Width = 40
		f.inputs[i] = ti
	}
	f.errField = -1
	return f
}

func typeNames() []string {
	names := make([]string, len(pets.Types))
	for i, t := range pets.Types {
		names[i] = string(t)
	}
	return names
}

// openForm resets the form and focuses the first field.
func (m *Model) openForm() tea.Cmd {
	m.form = newFormState()
	m.form.inputs[fieldType].SetValue(string(pets.TypeDog))
	m.mode = modeForm
	return m.form.focus(fieldName)
}

// focus moves the cursor to field idx.
func (f *formState) focus(idx int) tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.focusIdx = (idx + fieldCount) % fieldCount
	return f.inputs[f.focusIdx].Focus()
}

// input builds the create payload. The image file is read from disk here so
// an unreadable path is reported on the form.
func (f *formState) input() (pets.Input, error) {
	in := pets.Input{
		Name:        strings.TrimSpace(f.inputs[fieldName].Value()),
		Type:        strings.ToLower(strings.TrimSpace(f.inputs[fieldType].Value())),
		Price:       strings.TrimSpace(f.inputs[fieldPrice].Value()),
		Description: strings.TrimSpace(f.inputs[fieldDescription].Value()),
	}
	if err := in.Validate(); err != nil {
		return in, err
	}

	path := strings.TrimSpace(f.inputs[fieldImage].Value())
	if path == "" {
		return in, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return in, &pets.ValidationError{Field: "image", Reason: "cannot be read"}
	}
	if info.IsDir() || info.Size() > maxImageSize {
		return in, &pets.ValidationError{Field: "image", Reason: fmt.Sprintf("must be a file under %d MB", maxImageSize>>20)}
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return in, &pets.ValidationError{Field: "image", Reason: "cannot be read"}
	}
	in.Image = &pets.Upload{Filename: path, Content: content}
	return in, nil
}

// setError records err on the form, focusing the offending field.
func (f *formState) setError(err error) tea.Cmd {
	f.err = err.Error()
	f.errField = -1

	var verr *pets.ValidationError
	if !errors.As(err, &verr) {
		return nil
	}
	fields := map[string]int{
		"name":  fieldName,
		"type":  fieldType,
		"price": fieldPrice,
		"image": fieldImage,
	}
	idx, ok := fields[verr.Field]
	if !ok {
		return nil
	}
	f.errField = idx
	f.err = fieldLabels[idx] + " " + verr.Reason
	return f.focus(idx)
}

// handleFormKey processes keyboard input while the add form is open.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "esc":
		m.mode = modeBrowse
		m.form = newFormState()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		return m, m.form.focus(m.form.focusIdx + 1)

	case key.Matches(msg, m.keys.PrevField):
		return m, m.form.focus(m.form.focusIdx - 1)

	case key.Matches(msg, m.keys.Submit),
		msg.String() == "enter" && m.form.focusIdx == fieldCount-1:
		return m.submitForm()

	case msg.String() == "enter":
		return m, m.form.focus(m.form.focusIdx + 1)
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focusIdx], cmd = m.form.inputs[m.form.focusIdx].Update(msg)
	return m, cmd
}

// submitForm validates the form and starts the add operation.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	in, err := m.form.input()
	if err != nil {
		return m, m.form.setError(err)
	}
	if m.coll == nil {
		return m, nil
	}

	m.mode = modeBrowse
	m.form = newFormState()
	m.errorMsg = ""
	return m, addCmd(m.ctx, m.coll, in)
}

// renderForm renders the add-pet form as a modal.
func (m Model) renderForm() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Add New Pet"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	for i, input := range m.form.inputs {
		labelStyle := styles.MutedText
		switch {
		case i == m.form.errField:
			labelStyle = styles.DangerText
		case i == m.form.focusIdx:
			labelStyle = styles.AccentText.Bold(true)
		}
		b.WriteString(labelStyle.Width(14).Render(fieldLabels[i]))
		b.WriteString(input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.form.err != "" {
		b.WriteString(styles.DangerText.Render(m.form.err))
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render("tab next  shift+tab prev  ctrl+s save  esc cancel"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(64)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
