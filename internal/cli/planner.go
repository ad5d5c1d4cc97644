package cli

import (
	"fmt"

	"github.com/julianstephens/plannerhub/internal/models"
	"github.com/julianstephens/plannerhub/internal/validation"
)

type PlannerCreateDailyCmd struct {
	User     string `help:"Account id or email." optional:""`
	Password string `help:"Account password." optional:""`
	Name     string `arg:"" help:"Planner name."`
	Start    string `help:"First slot, HH:MM." default:"09:00"`
	End      string `help:"End of day, HH:MM." default:"17:00"`
	Interval int    `help:"Minutes per slot." default:"60"`
}

func (c *PlannerCreateDailyCmd) Run(ctx *Context) error {
	if err := ctx.logIn(c.User, c.Password); err != nil {
		return err
	}
	if err := validation.ValidateClockRange(c.Start, c.End, c.Interval); err != nil {
		return err
	}
	id, ok := ctx.Access.CreateDailyPlanner(c.Name, c.Start, c.End, c.Interval)
	if !ok {
		return fmt.Errorf("only regular accounts can create planners")
	}
	ctx.SaveAll()
	fmt.Printf("Created daily planner %s.\n", id)
	return nil
}

type PlannerCreateProjectCmd struct {
	User     string   `help:"Account id or email." optional:""`
	Password string   `help:"Account password." optional:""`
	Name     string   `arg:"" help:"Planner name."`
	Columns  []string `help:"Three status column headings." default:"todo,doing,done"`
}

func (c *PlannerCreateProjectCmd) Run(ctx *Context) error {
	if err := ctx.logIn(c.User, c.Password); err != nil {
		return err
	}
	if len(c.Columns) != 3 {
		return fmt.Errorf("exactly three column headings required, got %d", len(c.Columns))
	}
	id, ok := ctx.Access.CreateProjectPlanner(c.Name, c.Columns[0], c.Columns[1], c.Columns[2])
	if !ok {
		return fmt.Errorf("only regular accounts can create planners")
	}
	ctx.SaveAll()
	fmt.Printf("Created project planner %s.\n", id)
	return nil
}

type PlannerCreateReminderCmd struct {
	User     string   `help:"Account id or email." optional:""`
	Password string   `help:"Account password." optional:""`
	Name     string   `arg:"" help:"Planner name."`
	Headings []string `help:"Task, date and status column headings." default:"task,deadline,status"`
}

func (c *PlannerCreateReminderCmd) Run(ctx *Context) error {
	if err := ctx.logIn(c.User, c.Password); err != nil {
		return err
	}
	if len(c.Headings) != 3 {
		return fmt.Errorf("exactly three headings required, got %d", len(c.Headings))
	}
	id, ok := ctx.Access.CreateReminderPlanner(c.Name, c.Headings[0], c.Headings[1], c.Headings[2])
	if !ok {
		return fmt.Errorf("only regular accounts can create planners")
	}
	ctx.SaveAll()
	fmt.Printf("Created reminder planner %s.\n", id)
	return nil
}

type PlannerEditCmd struct {
	User     string `help:"Account id or email." optional:""`
	Password string `help:"Account password." optional:""`
	ID       string `arg:"" help:"Planner id."`
	Key      string `arg:"" help:"Time slot (daily), task or column (project), task (reminder)."`
	Value    string `arg:"" help:"Agenda text, status column, or due date."`
}

func (c *PlannerEditCmd) Run(ctx *Context) error {
	if err := ctx.logIn(c.User, c.Password); err != nil {
		return err
	}
	// Reminder edits take a due date; reject a malformed one up front
	// with a clearer message than the generic edit failure.
	if p := ctx.Planners.Find(c.ID); p != nil && p.Type == models.PlannerReminder {
		if err := validation.ValidateDate(c.Value); err != nil {
			return err
		}
	}
	if !ctx.Access.EditPlanner(c.ID, c.Key, c.Value) {
		return fmt.Errorf("cannot edit planner %s with %q=%q", c.ID, c.Key, c.Value)
	}
	ctx.SaveAll()
	fmt.Println(renderPlanner(ctx.Planners.Find(c.ID)))
	return nil
}

type PlannerPrivacyCmd struct {
	User     string `help:"Account id or email." optional:""`
	Password string `help:"Account password." optional:""`
	ID       string `arg:"" help:"Planner id."`
	Status   string `arg:"" help:"private or public."`
}

func (c *PlannerPrivacyCmd) Run(ctx *Context) error {
	if err := ctx.logIn(c.User, c.Password); err != nil {
		return err
	}
	status, err := validation.ValidatePrivacy(c.Status)
	if err != nil {
		return err
	}
	if !ctx.Access.ChangePrivacyStatus(c.ID, status) {
		return fmt.Errorf("cannot change privacy of planner %s", c.ID)
	}
	ctx.SaveAll()
	fmt.Printf("Planner %s is now %s.\n", c.ID, status)
	return nil
}

type PlannerDeleteCmd struct {
	User     string `help:"Account id or email." optional:""`
	Password string `help:"Account password." optional:""`
	ID       string `arg:"" help:"Planner id."`
}

func (c *PlannerDeleteCmd) Run(ctx *Context) error {
	if err := ctx.logIn(c.User, c.Password); err != nil {
		return err
	}
	if !ctx.Access.DeletePlanner(c.ID) {
		return fmt.Errorf("cannot delete planner %s", c.ID)
	}
	ctx.SaveAll()
	fmt.Printf("Deleted planner %s.\n", c.ID)
	return nil
}

type PlannerListCmd struct {
	User     string `help:"Account id or email. When set, lists that account's planners." optional:""`
	Password string `help:"Account password." optional:""`
	Public   bool   `help:"List public planners only; needs no login."`
}

func (c *PlannerListCmd) Run(ctx *Context) error {
	if c.Public {
		for _, id := range ctx.Planners.PublicPlanners() {
			fmt.Println(renderPlannerLine(ctx.Planners.Find(id)))
		}
		return nil
	}
	if err := ctx.logIn(c.User, c.Password); err != nil {
		return err
	}
	ids := ctx.Access.OwnedPlanners(ctx.Access.Subject())
	if len(ids) == 0 {
		fmt.Println("No personal planners available yet.")
		return nil
	}
	for _, id := range ids {
		fmt.Println(renderPlannerLine(ctx.Planners.Find(id)))
	}
	return nil
}

type PlannerShowCmd struct {
	ID string `arg:"" help:"Planner id."`
}

func (c *PlannerShowCmd) Run(ctx *Context) error {
	p := ctx.Planners.Find(c.ID)
	if p == nil {
		return fmt.Errorf("no planner with id %s", c.ID)
	}
	fmt.Println(renderPlanner(p))
	return nil
}

type PlannerStatusCmd struct {
	User     string `help:"Account id or email." optional:""`
	Password string `help:"Account password." optional:""`
	ID       string `arg:"" help:"Reminder planner id."`
	Task     string `arg:"" help:"Task name."`
	Done     bool   `help:"Mark done instead of pending." default:"true" negatable:""`
}

func (c *PlannerStatusCmd) Run(ctx *Context) error {
	if err := ctx.logIn(c.User, c.Password); err != nil {
		return err
	}
	if !ctx.Access.CanEdit(ctx.Access.Subject(), c.ID) {
		return fmt.Errorf("cannot edit planner %s", c.ID)
	}
	if !ctx.Planners.ChangeTaskStatus(c.ID, c.Task, c.Done) {
		return fmt.Errorf("no task %q in reminder planner %s", c.Task, c.ID)
	}
	ctx.SaveAll()
	fmt.Println(renderPlanner(ctx.Planners.Find(c.ID)))
	return nil
}
