package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const DEFAULT_SERVER = "http://localhost:3000"

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true).
			PaddingLeft(2)

	normalStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

type step int

const (
	stepEnteringServer step = iota
	stepEnteringName
	stepSelectingType
	stepCreating
	stepComplete
)

var deviceTypes = []string{"sensor", "controller"}

type model struct {
	step         step
	serverURL    string
	deviceName   string
	deviceType   string
	cursor       int
	currentInput string
	message      string
	createdID    string
	quitting     bool
}

type createSuccessMsg struct {
	id string
}

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel() model {
	return model{
		step:   stepEnteringServer,
		cursor: 0,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func createDevice(serverURL, name, deviceType string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		payload := map[string]string{
			"name": name,
			"type": deviceType,
		}
		jsonData, _ := json.Marshal(payload)

		req, _ := http.NewRequest("POST", strings.TrimRight(serverURL, "/")+"/api/devices", bytes.NewBuffer(jsonData))
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return errMsg{fmt.Errorf("server not reachable: %w", err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			body, _ := io.ReadAll(resp.Body)
			return errMsg{fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))}
		}

		var result struct {
			Data struct {
				ID string `json:"id"`
			} `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return errMsg{fmt.Errorf("unexpected response: %w", err)}
		}

		return createSuccessMsg{id: result.Data.ID}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "q":
			if m.step != stepEnteringServer && m.step != stepEnteringName {
				m.quitting = true
				return m, tea.Quit
			}
			m.currentInput += "q"

		case "up", "k":
			if m.step == stepSelectingType && m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.step == stepSelectingType && m.cursor < len(deviceTypes)-1 {
				m.cursor++
			}

		case "backspace":
			if len(m.currentInput) > 0 {
				m.currentInput = m.currentInput[:len(m.currentInput)-1]
			}

		default:
			if m.step == stepEnteringServer || m.step == stepEnteringName {
				m.currentInput += msg.String()
			}

		case "enter":
			switch m.step {
			case stepEnteringServer:
				m.serverURL = m.currentInput
				if m.serverURL == "" {
					m.serverURL = DEFAULT_SERVER
				}
				m.currentInput = ""
				m.step = stepEnteringName

			case stepEnteringName:
				if m.currentInput != "" {
					m.deviceName = m.currentInput
					m.currentInput = ""
					m.step = stepSelectingType
				}

			case stepSelectingType:
				m.deviceType = deviceTypes[m.cursor]
				m.step = stepCreating
				m.message = fmt.Sprintf("Registering %s...", m.deviceName)
				return m, createDevice(m.serverURL, m.deviceName, m.deviceType)

			case stepComplete:
				// Register another device against the same server
				m.deviceName = ""
				m.deviceType = ""
				m.cursor = 0
				m.message = ""
				m.step = stepEnteringName
			}
		}

	case createSuccessMsg:
		m.createdID = msg.id
		m.step = stepComplete
		m.message = successStyle.Render("✓ Device registered!")

	case errMsg:
		m.message = errorStyle.Render("✗ " + msg.err.Error())
		m.step = stepEnteringName
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("🔧 Device Setup Tool\n\n"))

	switch m.step {
	case stepEnteringServer:
		s.WriteString(promptStyle.Render("Enter server URL:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString(fmt.Sprintf("\n\nPress Enter (empty for %s)\n", DEFAULT_SERVER))

	case stepEnteringName:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		s.WriteString(promptStyle.Render("Enter device name:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepSelectingType:
		s.WriteString(promptStyle.Render("Select device type:\n\n"))

		for i, t := range deviceTypes {
			cursor := " "
			style := normalStyle
			if m.cursor == i {
				cursor = ">"
				style = selectedStyle
			}
			s.WriteString(fmt.Sprintf("%s %s\n", cursor, style.Render(t)))
		}

		s.WriteString("\nUse ↑/↓, Enter to register, q to quit\n")

	case stepCreating:
		s.WriteString(m.message + "\n")

	case stepComplete:
		s.WriteString(m.message + "\n")
		s.WriteString(fmt.Sprintf("\n%s (%s)\nid: %s\n", m.deviceName, m.deviceType, m.createdID))
		s.WriteString("\nPress Enter to register another, q to quit\n")
	}

	return s.String()
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
