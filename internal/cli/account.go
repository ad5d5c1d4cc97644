package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/plannerhub/internal/store"
	"github.com/julianstephens/plannerhub/internal/validation"
)

type AccountCreateCmd struct {
	Email    string `help:"Signup email. Ends with @admin.com for an admin account, empty for a trial account." optional:""`
	Name     string `help:"Display name." optional:""`
	Password string `help:"Account password." optional:""`
}

func (c *AccountCreateCmd) Run(ctx *Context) error {
	email, name, password := c.Email, c.Name, c.Password
	if name == "" && password == "" {
		var err error
		email, name, password, err = promptSignup()
		if err != nil {
			return err
		}
	}
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}

	id, err := ctx.Access.CreateAccount(email, name, password)
	if errors.Is(err, store.ErrDuplicateEmail) {
		return fmt.Errorf("an account with email %q already exists", email)
	}
	if err != nil {
		return err
	}
	ctx.SaveAll()
	fmt.Printf("Created %s account with id %s. Use this id to log in.\n", ctx.Access.Role(id), id)
	return nil
}

type AccountLoginCmd struct {
	User     string `help:"Account id or email." optional:""`
	Password string `help:"Account password." optional:""`
}

func (c *AccountLoginCmd) Run(ctx *Context) error {
	if err := ctx.logIn(c.User, c.Password); err != nil {
		return err
	}
	fmt.Printf("Logged in as account %s (session %s).\n", ctx.Access.Subject(), ctx.Access.Token())
	return nil
}

type AccountShowCmd struct {
	User     string `help:"Account id or email." optional:""`
	Password string `help:"Account password." optional:""`
}

func (c *AccountShowCmd) Run(ctx *Context) error {
	if err := ctx.logIn(c.User, c.Password); err != nil {
		return err
	}
	acc := ctx.Identity.FindAccount(ctx.Access.Subject())
	fmt.Printf("Account %s: %s <%s> role=%s\n", acc.ID, acc.UserName, acc.Email, acc.Role)
	for _, id := range ctx.Access.OwnedPlanners(acc.ID) {
		fmt.Println(renderPlannerLine(ctx.Planners.Find(id)))
	}
	return nil
}

type AccountEditCmd struct {
	User        string `help:"Account id or email." optional:""`
	Password    string `help:"Current password." optional:""`
	NewName     string `help:"New display name." optional:""`
	NewPassword string `help:"New password, must differ from the current one." optional:""`
}

func (c *AccountEditCmd) Run(ctx *Context) error {
	if err := ctx.logIn(c.User, c.Password); err != nil {
		return err
	}
	acc := ctx.Identity.FindAccount(ctx.Access.Subject())

	changed := false
	if c.NewName != "" {
		ctx.Identity.SetUserName(acc, c.NewName)
		changed = true
	}
	if c.NewPassword != "" {
		if !ctx.Identity.SetPassword(acc, c.NewPassword) {
			return fmt.Errorf("new password must differ from the current one")
		}
		changed = true
	}
	if !changed {
		return fmt.Errorf("nothing to change: pass --new-name and/or --new-password")
	}
	ctx.SaveAll()
	fmt.Println("Account updated.")
	return nil
}

type AccountDeleteCmd struct {
	User     string `help:"Account id or email." optional:""`
	Password string `help:"Account password." optional:""`
}

func (c *AccountDeleteCmd) Run(ctx *Context) error {
	if err := ctx.logIn(c.User, c.Password); err != nil {
		return err
	}
	subject := ctx.Access.Subject()
	if !ctx.Access.RemoveAccount(subject) {
		return fmt.Errorf("failed to delete account %s", subject)
	}
	ctx.SaveAll()
	fmt.Printf("Deleted account %s. Private planners were removed, public ones remain.\n", subject)
	return nil
}
