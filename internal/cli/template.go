package cli

import "fmt"

type TemplateCreateCmd struct {
	User     string   `help:"Admin account id or email." optional:""`
	Password string   `help:"Account password." optional:""`
	Name     string   `arg:"" help:"Template name."`
	Prompts  []string `help:"Initial prompts, in order." optional:""`
}

func (c *TemplateCreateCmd) Run(ctx *Context) error {
	if err := ctx.logIn(c.User, c.Password); err != nil {
		return err
	}
	id, ok := ctx.Access.CreateTemplate(c.Name, c.Prompts...)
	if !ok {
		return fmt.Errorf("only admin accounts can create templates")
	}
	ctx.SaveAll()
	fmt.Printf("Created template %s.\n", id)
	return nil
}

type TemplateRenamePromptCmd struct {
	User     string `help:"Admin account id or email." optional:""`
	Password string `help:"Account password." optional:""`
	ID       string `arg:"" help:"Template id."`
	Index    int    `arg:"" help:"Prompt index."`
	Name     string `arg:"" help:"New prompt text."`
}

func (c *TemplateRenamePromptCmd) Run(ctx *Context) error {
	if err := ctx.logIn(c.User, c.Password); err != nil {
		return err
	}
	if !ctx.Access.RenamePrompt(c.ID, c.Index, c.Name) {
		return fmt.Errorf("cannot rename prompt %d of template %s", c.Index, c.ID)
	}
	ctx.SaveAll()
	fmt.Println(renderTemplate(ctx.Templates.Find(c.ID)))
	return nil
}

type TemplateAddPromptCmd struct {
	User     string `help:"Admin account id or email." optional:""`
	Password string `help:"Account password." optional:""`
	ID       string `arg:"" help:"Template id."`
	Name     string `arg:"" help:"Prompt text."`
	Index    int    `help:"Insertion index; -1 appends." default:"-1"`
}

func (c *TemplateAddPromptCmd) Run(ctx *Context) error {
	if err := ctx.logIn(c.User, c.Password); err != nil {
		return err
	}
	if !ctx.Access.AddPrompt(c.ID, c.Index, c.Name) {
		return fmt.Errorf("cannot add prompt to template %s at index %d", c.ID, c.Index)
	}
	ctx.SaveAll()
	fmt.Println(renderTemplate(ctx.Templates.Find(c.ID)))
	return nil
}

type TemplateRemovePromptCmd struct {
	User     string `help:"Admin account id or email." optional:""`
	Password string `help:"Account password." optional:""`
	ID       string `arg:"" help:"Template id."`
	Index    int    `arg:"" help:"Prompt index."`
}

func (c *TemplateRemovePromptCmd) Run(ctx *Context) error {
	if err := ctx.logIn(c.User, c.Password); err != nil {
		return err
	}
	if !ctx.Access.RemovePrompt(c.ID, c.Index) {
		return fmt.Errorf("cannot remove prompt %d of template %s", c.Index, c.ID)
	}
	ctx.SaveAll()
	fmt.Println(renderTemplate(ctx.Templates.Find(c.ID)))
	return nil
}

type TemplateDeleteCmd struct {
	User     string `help:"Admin account id or email." optional:""`
	Password string `help:"Account password." optional:""`
	ID       string `arg:"" help:"Template id."`
}

func (c *TemplateDeleteCmd) Run(ctx *Context) error {
	if err := ctx.logIn(c.User, c.Password); err != nil {
		return err
	}
	if !ctx.Access.DeleteTemplate(c.ID) {
		return fmt.Errorf("cannot delete template %s", c.ID)
	}
	ctx.SaveAll()
	fmt.Printf("Deleted template %s.\n", c.ID)
	return nil
}

type TemplateListCmd struct{}

func (c *TemplateListCmd) Run(ctx *Context) error {
	templates := ctx.Templates.All()
	if len(templates) == 0 {
		fmt.Println("No templates available yet.")
		return nil
	}
	for _, t := range templates {
		fmt.Println(renderTemplate(t))
	}
	return nil
}
