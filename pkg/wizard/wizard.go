// Package wizard implements the --init config scaffolding flow with
// charmbracelet/huh, in the same form-group style as the teacher's setup
// wizard.
package wizard

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
)

// Answers collects what the wizard gathers from the user to seed a new
// config file.
type Answers struct {
	EnvironmentA string
	BaseURLA     string
	EnvironmentB string
	BaseURLB     string
	RouteName    string
	RoutePath    string
}

// Run drives an interactive form asking for two environments and one
// starter route, returning the answers to render into a TOML skeleton.
func Run() (*Answers, error) {
	a := &Answers{
		EnvironmentA: "staging",
		EnvironmentB: "production",
		RouteName:    "health",
		RoutePath:    "/health",
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("First environment name").Value(&a.EnvironmentA),
			huh.NewInput().Title("First environment base URL").Value(&a.BaseURLA),
		),
		huh.NewGroup(
			huh.NewInput().Title("Second environment name").Value(&a.EnvironmentB),
			huh.NewInput().Title("Second environment base URL").Value(&a.BaseURLB),
		),
		huh.NewGroup(
			huh.NewInput().Title("Starter route name").Value(&a.RouteName),
			huh.NewInput().Title("Starter route path").Value(&a.RoutePath),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard: setup cancelled: %w", err)
	}
	return a, nil
}

// Render produces a config.toml skeleton from the wizard's answers.
func (a *Answers) Render() string {
	return fmt.Sprintf(`[global]
timeout = 30
max_concurrent = 10
follow_redirects = true

[environments.%s]
base_url = %q

[environments.%s]
base_url = %q

[[routes]]
name = %q
method = "GET"
path = %q
`, a.EnvironmentA, a.BaseURLA, a.EnvironmentB, a.BaseURLB, a.RouteName, a.RoutePath)
}

// WriteDefaults runs the wizard and writes the resulting config to path,
// refusing to overwrite an existing file.
func WriteDefaults(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("wizard: %s already exists", path)
	}

	a, err := Run()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(a.Render()), 0644)
}
