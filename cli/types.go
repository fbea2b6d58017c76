package cli

import (
	"fmt"
	"sort"

	"github.com/chrisuehlinger/widgetkit/widget"
)

func init() {
	RegisterCommand(&Command{
		Name:  "types",
		Short: "List registered widget types",
		Long: `List the registered widget types and their property tables.

For each property the listing shows its value domain, default, markup
mapping, whether external markup edits flow back into state, and the
semantic event its changes fire.`,
		Usage: "widgetkit types",
		Run:   runTypes,
	})
}

func runTypes(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("types takes no arguments\n\nUsage: widgetkit types")
	}

	for _, t := range widget.RegisteredTypes() {
		tag := t.TagName
		if tag == "" {
			tag = "div"
		}
		fmt.Printf("%s  <%s>", t.Name, tag)
		if t.BaseClass != "" {
			fmt.Printf(" class=%q", t.BaseClass)
		}
		fmt.Println()

		for _, d := range t.Descriptors {
			line := fmt.Sprintf("  %-12s %s", d.Name, d.Type)
			if d.Type == widget.Enum {
				line += fmt.Sprintf("%v", d.Enum)
			}
			if d.Default != nil {
				line += fmt.Sprintf("  default=%v", d.Default)
			}
			if d.Mapping != nil {
				line += "  " + d.Mapping.String()
			}
			if d.BindFromDOM {
				line += "  two-way"
			}
			if d.ChangeEvent != "" {
				line += "  fires=" + d.ChangeEvent
			}
			fmt.Println(line)
		}

		domEvents := make([]string, 0, len(t.DOMEvents))
		for domEvent := range t.DOMEvents {
			domEvents = append(domEvents, domEvent)
		}
		sort.Strings(domEvents)
		for _, domEvent := range domEvents {
			fmt.Printf("  on %s -> %s\n", domEvent, t.DOMEvents[domEvent])
		}
		fmt.Println()
	}
	return nil
}
