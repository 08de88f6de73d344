package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) isLoggedIn(context.Context) bool { return f.loggedIn }
func (f *fakeExec) hasScreen(name string) bool {
	return name == "products" || name == "orders"
}
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) WhoAmI(ctx context.Context) error {
	f.calls = append(f.calls, "whoami")
	return nil
}
func (f *fakeExec) Screen(ctx context.Context, name, action string, args []string) error {
	f.calls = append(f.calls, strings.TrimSpace(fmt.Sprintf("%s %s %s", name, action, strings.Join(args, " "))))
	return nil
}

func TestRunREPL_GateAndDispatch(t *testing.T) {
	var out bytes.Buffer
	input := strings.NewReader(strings.Join([]string{
		"products",
		"help",
		"login",
		"help",
		"products",
		"Products search",
		"orders delete 7",
		"whoami",
		"logout",
		"orders list",
		"foobar",
		"exit",
		"login",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(input), &out)

	assert.Equal(t, []string{
		"login",
		"products list",
		"products search",
		"orders delete 7",
		"whoami",
		"logout",
	}, exec.calls)

	printed := out.String()
	assert.Equal(t, 2, strings.Count(printed, signInHint), "screens are refused before login and after logout")
	assert.Contains(t, printed, "booky status > ")
	assert.Contains(t, printed, "Available commands: register, login, exit\n")
	assert.Contains(t, printed, "Screen actions: list, search, clear, refresh,")
	assert.Contains(t, printed, "Unknown command: foobar\n")
	assert.True(t, strings.HasSuffix(printed, "Bye!\n"))
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("\n  \norders")), io.Discard)

	assert.Equal(t, []string{"orders list"}, exec.calls, "a last line without newline still runs")
}
