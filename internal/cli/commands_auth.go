package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aussiebroadwan/eventcart/pkg/cartsdk"
	"github.com/aussiebroadwan/eventcart/pkg/cryptox"
	"github.com/aussiebroadwan/eventcart/pkg/jwtx"
)

func (a *App) cmdRegister(ctx context.Context, args []string) error {
	fs := a.flags("register")
	var req cartsdk.RegisterRequest
	fs.StringVar(&req.Email, "email", "", "email address")
	fs.StringVar(&req.FirstName, "first", "", "first name")
	fs.StringVar(&req.LastName, "last", "", "last name")
	fs.StringVar(&req.Phone, "phone", "", "phone number in E.164 format")
	if err := a.parse(fs, args); err != nil {
		return err
	}

	pw, err := a.readPassword(os.Getenv("EVENTCART_PASSWORD"))
	if err != nil {
		return err
	}
	req.Password = pw

	user, err := a.session.Register(ctx, req)
	if err != nil {
		return err
	}
	// Registration stores the session; publish it through the provider too.
	if err := a.auth.Login(ctx, user, a.session.Token()); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s! You are signed in as %s.\n", user.FullName(), user.Email)
	return nil
}

func (a *App) cmdLogin(ctx context.Context, args []string) error {
	fs := a.flags("login")
	email := fs.String("email", "", "email address")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if *email == "" {
		return usageErr("-email is required")
	}

	pw, err := a.readPassword(os.Getenv("EVENTCART_PASSWORD"))
	if err != nil {
		return err
	}

	user, err := a.auth.LoginWithPassword(ctx, *email, pw)
	if err != nil {
		if cartsdk.IsUnauthorized(err) {
			return fmt.Errorf("invalid email or password")
		}
		return err
	}

	fmt.Fprintf(a.out, "Signed in as %s (%s).\n", user.FullName(), user.Email)
	return nil
}

func (a *App) cmdLogout(ctx context.Context, args []string) error {
	if err := a.parse(a.flags("logout"), args); err != nil {
		return err
	}
	if _, err := a.session.Load(ctx); err != nil {
		return err
	}

	if err := a.auth.Logout(ctx); err != nil {
		// The local session is gone either way.
		a.logger.Warn("logout request failed", "err", err)
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func (a *App) cmdWhoami(ctx context.Context, args []string) error {
	if err := a.parse(a.flags("whoami"), args); err != nil {
		return err
	}
	if err := a.auth.Init(ctx); err != nil {
		return err
	}

	st := a.auth.State(ctx)
	if !st.IsAuthenticated {
		if st.Message != "" {
			fmt.Fprintf(a.out, "Not signed in (%s).\n", st.Message)
		} else {
			fmt.Fprintln(a.out, "Not signed in.")
		}
		return nil
	}

	u := st.User
	role := "customer"
	if u.IsAdmin {
		role = "admin"
	}
	fmt.Fprintf(a.out, "%s <%s> (%s)\n", u.FullName(), u.Email, role)
	return nil
}

// cmdStatus reports the stored session without contacting the backend.
func (a *App) cmdStatus(ctx context.Context, args []string) error {
	if err := a.parse(a.flags("status"), args); err != nil {
		return err
	}

	user, err := a.session.Load(ctx)
	if err != nil {
		return err
	}

	tw := newTable(a.out)
	defer tw.Flush()

	fmt.Fprintf(tw, "Server:\t%s\n", a.cfg.BaseURL)
	fmt.Fprintf(tw, "Store:\t%s\n", a.cfg.Store)
	if user == nil {
		fmt.Fprintf(tw, "Signed in:\tno\n")
		return nil
	}

	token := a.session.Token()
	fmt.Fprintf(tw, "Signed in:\tyes\n")
	fmt.Fprintf(tw, "User:\t%s <%s>\n", user.FullName(), user.Email)
	fmt.Fprintf(tw, "Token:\t%s\n", cryptox.FingerprintToken(token))

	if exp, ok := jwtx.ExpiresAt(token); ok {
		left := time.Until(exp).Round(time.Second)
		if left > 0 {
			fmt.Fprintf(tw, "Expires:\t%s (in %s)\n", exp.Local().Format(time.RFC1123), left)
		} else {
			fmt.Fprintf(tw, "Expires:\t%s (expired, refreshed on next request)\n", exp.Local().Format(time.RFC1123))
		}
	}
	return nil
}

func (a *App) cmdVersion(_ context.Context, _ []string) error {
	fmt.Fprintf(a.out, "eventcart %s\n", Version)
	return nil
}
