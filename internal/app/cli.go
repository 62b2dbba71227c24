package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/hitoshi/gatehouse/internal/access"
	"github.com/hitoshi/gatehouse/internal/handler"
	"github.com/hitoshi/gatehouse/internal/identity"
	"github.com/hitoshi/gatehouse/internal/model"
	"github.com/hitoshi/gatehouse/internal/session"
)

// cli はファイルに保存した1つのセッションスロットを操作する。
type cli struct {
	store    *session.Store
	resolver *identity.Resolver
	out      io.Writer
}

func newCLI(sessionFile string, out io.Writer) *cli {
	return &cli{
		store:    session.NewStore(session.NewFileStorage(sessionFile)),
		resolver: identity.NewResolver(),
		out:      out,
	}
}

// login はIdentityを解決してスロットに保存し、遷移先を表示する。
//
//	gatehouse login --email E --password P --role R
func (c *cli) login(ctx context.Context, args []string) error {
	var email, password, role string

	flagSet := pflag.NewFlagSet("login", pflag.ContinueOnError)
	flagSet.SetOutput(c.out)
	flagSet.StringVar(&email, "email", "", "email address (the part before @ becomes the display name)")
	flagSet.StringVar(&password, "password", "", "password (any non-empty value)")
	flagSet.StringVar(&role, "role", string(model.RoleResident), "role: resident, guard or admin")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if extra := flagSet.Args(); len(extra) > 0 {
		return fmt.Errorf("unexpected argument: %s", extra[0])
	}

	ident, err := c.resolver.Resolve(email, password, model.Role(role))
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := c.store.Set(ctx, ident); err != nil {
		return err
	}

	if err := c.printIdentity(ident); err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.out, "landing: %s\n", access.DashboardPath(ident.Role))
	return err
}

// logout はスロットを空にする。
func (c *cli) logout(ctx context.Context) error {
	if err := c.store.Clear(ctx); err != nil {
		return err
	}
	_, err := fmt.Fprintln(c.out, "logged out")
	return err
}

// whoami はスロットに保存されたIdentityを表示する。
func (c *cli) whoami(ctx context.Context) error {
	ident, err := c.store.Load(ctx)
	if err != nil {
		return err
	}
	if ident == nil {
		_, err := fmt.Fprintln(c.out, "not logged in")
		return err
	}
	return c.printIdentity(ident)
}

// visit はスロットのIdentityでパスへ遷移した場合の判定を表示する。
//
//	gatehouse visit /guard
func (c *cli) visit(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: gatehouse visit PATH")
	}

	ident, err := c.store.Load(ctx)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.out, describeVisit(ident, args[0]))
	return err
}

// describeVisit は遷移判定を1行の文字列にする。
// 例: "render", "redirect /login", "not found"
func describeVisit(ident *model.Identity, path string) string {
	decision, ok := access.Navigate(ident, path)
	if !ok {
		return "not found"
	}
	if decision.Outcome != access.OutcomeRender {
		return "redirect " + decision.Location
	}

	// 居住者ダッシュボードは定義済みのセクションのみ表示できる
	if section, found := strings.CutPrefix(path, "/resident/"); found && !isResidentSection(section) {
		return "not found"
	}
	return "render"
}

func isResidentSection(section string) bool {
	for _, s := range handler.ResidentSections {
		if s == section {
			return true
		}
	}
	return false
}

func (c *cli) printIdentity(ident *model.Identity) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(ident)
}
