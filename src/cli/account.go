package cli

import (
	"fmt"

	"historyatlas/src/client/api"
)

func (c *SignupCommand) Execute(args []string) error {
	r := c.runner
	return r.withApp(func(a *app) error {
		user, err := a.session.Signup(r.ctx, api.SignupRequest{
			Name:     c.Name,
			Email:    c.Email,
			Password: c.Password,
			City:     c.City,
			Country:  c.Country,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(r.out, "Welcome, %s!\n", user.Name)
		return nil
	})
}

func (c *LoginCommand) Execute(args []string) error {
	r := c.runner
	return r.withApp(func(a *app) error {
		user, err := a.session.Login(r.ctx, c.Email, c.Password)
		if err != nil {
			return err
		}

		fmt.Fprintf(r.out, "Logged in as %s\n", user.Email)
		return nil
	})
}

func (c *LogoutCommand) Execute(args []string) error {
	r := c.runner
	return r.withApp(func(a *app) error {
		if err := a.session.Logout(); err != nil {
			return err
		}

		fmt.Fprintln(r.out, "Logged out")
		return nil
	})
}

func (c *WhoamiCommand) Execute(args []string) error {
	r := c.runner
	return r.withApp(func(a *app) error {
		if !a.session.LoggedIn() {
			fmt.Fprintln(r.out, "Not logged in")
			return nil
		}

		user, err := a.session.Me(r.ctx)
		if err != nil {
			return err
		}
		return render(r.out, "user", user)
	})
}

func (c *OrdersCommand) Execute(args []string) error {
	r := c.runner
	return r.withApp(func(a *app) error {
		orders, err := a.session.Orders(r.ctx)
		if err != nil {
			return err
		}
		return render(r.out, "orders", orders)
	})
}
