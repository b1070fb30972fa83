// build-readme renders README.md from README.md.tmpl and the registered commands.
package main

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"text/template"

	_ "modbot/internal/command/info"
	_ "modbot/internal/command/moderation"

	"modbot/internal/command"
	"modbot/internal/command/core"
	"modbot/internal/config"
	"modbot/internal/pager"
	"modbot/pkg/cmd"

	"github.com/rs/zerolog/log"
)

type cmdInfo struct {
	Name string
	Help string
	Perm string
}

func main() {
	command.RegisterCommand(core.NewHelpCommand(pager.NewStore(1, 0), pager.DefaultPageSize))
	if err := render("README.md.tmpl", "README.md"); err != nil {
		log.Fatal().Err(err).Msg("failed to build README")
	}
}

func render(tmplPath, outPath string) error {
	tmplData, err := os.ReadFile(tmplPath)
	if err != nil {
		return err
	}
	tmpl, err := template.New("readme").Parse(string(tmplData))
	if err != nil {
		return err
	}

	data := map[string]any{
		"CommandSections": commandSections(cmd.DefaultRegistry),
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return err
	}
	return os.WriteFile(outPath, out.Bytes(), 0644)
}

// commandSections lists commands grouped by category, in help order.
func commandSections(r *cmd.Registry) string {
	sections := make(map[string][]cmdInfo)
	for _, c := range r.GetAll() {
		meta, ok := command.Meta(c)
		if !ok {
			continue
		}
		info := cmdInfo{Name: "/" + meta.Name(), Help: meta.Help(), Perm: "everyone"}
		if meta.OwnerOnly() {
			info.Perm = "bot owner"
		} else if perms := meta.UserPermissions(); len(perms) > 0 {
			info.Perm = command.PermissionName(perms[0])
		}
		sections[meta.Category()] = append(sections[meta.Category()], info)
	}

	cats := make([]string, 0, len(sections))
	for cat := range sections {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool {
		return config.CategoryWeight(cats[i]) < config.CategoryWeight(cats[j])
	})

	var buf bytes.Buffer
	for _, cat := range cats {
		fmt.Fprintf(&buf, "### %s\n\n", cat)
		for _, c := range sections[cat] {
			fmt.Fprintf(&buf, "* **`%s`** (%s)\n  %s\n\n", c.Name, c.Perm, c.Help)
		}
	}
	return buf.String()
}
