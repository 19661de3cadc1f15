package shell

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"stellarburgers/internal/api"
	"stellarburgers/internal/router"
	"stellarburgers/internal/types"
)

// form is the text-input group backing the login, register, profile and
// password-reset pages.
type form struct {
	route  router.Route
	labels []string
	inputs []textinput.Model
	focus  int
}

func newInput(placeholder string, secret bool) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 64
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	return in
}

// newForm builds the form for a form route; nil for other routes.
// user prefills the profile form.
func newForm(route router.Route, user *types.User) *form {
	var f *form
	switch route {
	case router.RouteLogin:
		f = &form{
			route:  route,
			labels: []string{"Email", "Password"},
			inputs: []textinput.Model{newInput("you@example.com", false), newInput("password", true)},
		}
	case router.RouteRegister:
		f = &form{
			route:  route,
			labels: []string{"Name", "Email", "Password"},
			inputs: []textinput.Model{newInput("name", false), newInput("you@example.com", false), newInput("password", true)},
		}
	case router.RouteForgotPassword:
		f = &form{
			route:  route,
			labels: []string{"Email"},
			inputs: []textinput.Model{newInput("you@example.com", false)},
		}
	case router.RouteResetPassword:
		f = &form{
			route:  route,
			labels: []string{"New password", "Code from email"},
			inputs: []textinput.Model{newInput("new password", true), newInput("reset code", false)},
		}
	case router.RouteProfile:
		f = &form{
			route:  route,
			labels: []string{"Name", "Email", "Password"},
			inputs: []textinput.Model{newInput("name", false), newInput("email", false), newInput("new password", true)},
		}
		if user != nil {
			f.inputs[0].SetValue(user.Name)
			f.inputs[1].SetValue(user.Email)
		}
	default:
		return nil
	}
	f.inputs[0].Focus()
	return f
}

// cycle moves focus by delta, wrapping around.
func (f *form) cycle(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// update forwards a message to the focused input.
func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// value returns the trimmed value of input i.
func (f *form) value(i int) string {
	return f.inputs[i].Value()
}

// filled reports whether every input has a value. The only client-side
// validation is required-field presence.
func (f *form) filled() bool {
	for i := range f.inputs {
		if f.inputs[i].Value() == "" {
			return false
		}
	}
	return true
}

// profileUpdate builds the partial mutation for changed profile fields.
func profileUpdate(name, email, password string) api.ProfileUpdate {
	return api.ProfileUpdate{Name: name, Email: email, Password: password}
}
