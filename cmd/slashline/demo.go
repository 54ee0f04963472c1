package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"slashline/internal/completion"
	"slashline/internal/shell"
	"slashline/pkg/slashtypes"
)

// projectTags backs the dependent-completion demo: picking a project narrows
// the tag suggestions.
var projectTags = map[string][]string{
	"alpha": {"core", "infra", "ml"},
	"beta":  {"etl", "batch"},
	"gamma": {"viz", "ui"},
	"delta": {"ops", "cost"},
}

type demoItem struct {
	ID          int
	Name        string
	Description string
}

func demoItems(state map[string]any) []*demoItem {
	items, _ := state["items"].([]*demoItem)
	return items
}

func itemNames(ctx slashtypes.CompletionContext) []string {
	names := make([]string, 0)
	for _, item := range demoItems(ctx.State) {
		names = append(names, item.Name)
	}
	return names
}

func itemRows(items []*demoItem) []map[string]string {
	rows := make([]map[string]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, map[string]string{
			"ID":          strconv.Itoa(item.ID),
			"Name":        item.Name,
			"Description": item.Description,
		})
	}
	return rows
}

// newDemoApp builds the showcase application that exercises every argument
// feature: history-backed args, prompting, state-driven and dependent
// completion, path and numeric arguments.
func newDemoApp(opts ...shell.Option) *shell.App {
	opts = append([]shell.Option{shell.WithTitle("slashline showcase")}, opts...)
	app := shell.New("slashline", opts...)

	app.State()["items"] = []*demoItem{}
	app.State()["color"] = "indigo"

	app.OnStart(func(a *shell.App) error {
		a.Markdown("Type '/' for commands. Try /help to explore features.")
		color, _ := a.State()["color"].(string)
		a.Text(fmt.Sprintf("Current color: %s", color))
		items := demoItems(a.State())
		if len(items) == 0 {
			a.Info("No items yet. Use /add to create one!")
		} else {
			a.Table("Items", itemRows(items), []string{"ID", "Name", "Description"})
		}
		return nil
	})

	registerDemoCommands(app)
	return app
}

func registerDemoCommands(app *shell.App) {
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}

	must(app.Register("/add", "Add a new item with an optional description",
		[]slashtypes.ArgSpec{
			slashtypes.Arg("name", slashtypes.TypeString).WithHistory().WithPrompt(),
			slashtypes.Opt("description", slashtypes.TypeString, "No description"),
		},
		func(ctx slashtypes.Context, args map[string]slashtypes.Value) error {
			name := args["name"].Text()
			items := demoItems(ctx.State())
			for _, item := range items {
				if item.Name == name {
					return fmt.Errorf("item '%s' already exists", name)
				}
			}
			items = append(items, &demoItem{ID: len(items) + 1, Name: name, Description: args["description"].Text()})
			ctx.State()["items"] = items
			ctx.Success(fmt.Sprintf("Added '%s'", name))
			return nil
		}))

	must(app.Register("/list", "List all items", nil,
		func(ctx slashtypes.Context, _ map[string]slashtypes.Value) error {
			ctx.Table("Items", itemRows(demoItems(ctx.State())), []string{"ID", "Name", "Description"})
			return nil
		}))

	must(app.Register("/set", "Set the description of an existing item",
		[]slashtypes.ArgSpec{
			slashtypes.Arg("name", slashtypes.TypeString).WithCompleter(stateNameCompleter()).WithPrompt(),
			slashtypes.Arg("description", slashtypes.TypeString).WithPrompt(),
		},
		func(ctx slashtypes.Context, args map[string]slashtypes.Value) error {
			name := args["name"].Text()
			description := args["description"].Text()
			for _, item := range demoItems(ctx.State()) {
				if item.Name == name {
					item.Description = description
					ctx.Success(fmt.Sprintf("Set description of '%s' to '%s'", name, description))
					return nil
				}
			}
			ctx.Error(fmt.Sprintf("Item '%s' not found!", name))
			return nil
		}))

	must(app.Register("/delete", "Delete an existing item by name",
		[]slashtypes.ArgSpec{
			slashtypes.Arg("name", slashtypes.TypeString).WithCompleter(stateNameCompleter()).WithPrompt(),
		},
		func(ctx slashtypes.Context, args map[string]slashtypes.Value) error {
			name := args["name"].Text()
			items := demoItems(ctx.State())
			kept := items[:0]
			for _, item := range items {
				if item.Name != name {
					kept = append(kept, item)
				}
			}
			if len(kept) == len(items) {
				ctx.Error(fmt.Sprintf("Item '%s' not found!", name))
				return nil
			}
			ctx.State()["items"] = kept
			ctx.Success(fmt.Sprintf("Deleted '%s'", name))
			return nil
		}))

	must(app.Register("/search", "Search using history-backed query and optional limit",
		[]slashtypes.ArgSpec{
			slashtypes.Arg("query", slashtypes.TypeString).WithHistory().WithPrompt(),
			slashtypes.Opt("limit", slashtypes.TypeInt, "20").WithCompleter(completion.Numbers(10, 100, 10)),
		},
		func(ctx slashtypes.Context, args map[string]slashtypes.Value) error {
			ctx.Success(fmt.Sprintf("Searching '%s' (limit=%d)", args["query"].Text(), args["limit"].Int))
			return nil
		}))

	must(app.Register("/open", "Open a filesystem path",
		[]slashtypes.ArgSpec{
			slashtypes.Arg("path", slashtypes.TypePath),
		},
		func(ctx slashtypes.Context, args map[string]slashtypes.Value) error {
			path := args["path"].Text()
			content, err := os.ReadFile(path)
			if err != nil {
				ctx.Error(fmt.Sprintf("Could not read %s: %v", path, err))
				return nil
			}
			ctx.Markdown(string(content))
			ctx.Success(fmt.Sprintf("Opened: %s", path))
			return nil
		}))

	must(app.Register("/color", "Set current color",
		[]slashtypes.ArgSpec{
			slashtypes.Arg("color", slashtypes.TypeString).WithCompleter(completion.Choices("red", "green", "blue", "indigo")),
		},
		func(ctx slashtypes.Context, args map[string]slashtypes.Value) error {
			color := args["color"].Text()
			ctx.State()["color"] = color
			ctx.Success(fmt.Sprintf("Color set to: %s", color))
			ctx.Text(fmt.Sprintf("Current color: %s", color))
			return nil
		}))

	must(app.Register("/calc", "Add two numbers",
		[]slashtypes.ArgSpec{
			slashtypes.Arg("a", slashtypes.TypeInt).WithCompleter(completion.Numbers(0, 50, 5)),
			slashtypes.Arg("b", slashtypes.TypeInt).WithCompleter(completion.Numbers(0, 50, 5)),
		},
		func(ctx slashtypes.Context, args map[string]slashtypes.Value) error {
			a, b := args["a"].Int, args["b"].Int
			ctx.Success(fmt.Sprintf("calc: %d + %d = %d", a, b, a+b))
			return nil
		}))

	must(app.Register("/label", "Choose project then tag",
		[]slashtypes.ArgSpec{
			slashtypes.Arg("project", slashtypes.TypeString).WithCompleter(projectCompleter),
			slashtypes.Arg("tag", slashtypes.TypeString).WithCompleter(completion.Dependent("project", fetchTags)),
		},
		func(ctx slashtypes.Context, args map[string]slashtypes.Value) error {
			ctx.Success(fmt.Sprintf("Labeling project '%s' with tag '%s'", args["project"].Text(), args["tag"].Text()))
			return nil
		}))

	must(app.Register("/help", "List available commands", nil,
		func(ctx slashtypes.Context, _ map[string]slashtypes.Value) error {
			rows := make([]map[string]string, 0)
			for _, entry := range app.Registry().Entries() {
				rows = append(rows, map[string]string{"Command": entry.Name, "Description": entry.Help})
			}
			ctx.Table("Available commands", rows, []string{"Command", "Description"})
			return nil
		}))
}

func stateNameCompleter() slashtypes.Completer {
	return func(ctx slashtypes.CompletionContext) []string {
		return itemNames(ctx)
	}
}

func projectCompleter(_ slashtypes.CompletionContext) []string {
	projects := make([]string, 0, len(projectTags))
	for name := range projectTags {
		projects = append(projects, name)
	}
	sort.Strings(projects)
	return projects
}

func fetchTags(project string, _ slashtypes.CompletionContext) []string {
	if project == "" {
		return nil
	}
	tags, ok := projectTags[project]
	if !ok {
		return []string{"general"}
	}
	return tags
}
