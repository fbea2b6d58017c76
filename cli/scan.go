package cli

import (
	"fmt"

	"github.com/chrisuehlinger/widgetkit/widget"
)

func init() {
	RegisterCommand(&Command{
		Name:  "scan",
		Short: "Report the widgets a page declares",
		Long: `Parse a page, run the declarative scanner over it, and report the
widget instances it produced.

Each element carrying data-widget-type is enhanced through the normal
progressive-enhancement path. Declarations naming an unknown type or
carrying a malformed data-properties string are skipped and listed;
they never abort the rest of the scan.

Skipped-declaration diagnostics also go to stderr as structured logs.`,
		Usage: "widgetkit scan <page.html>",
		Run:   runScan,
	})
}

func runScan(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("scan expects exactly one page\n\nUsage: widgetkit scan <page.html>")
	}

	doc, err := loadPage(args[0])
	if err != nil {
		return err
	}
	issues := widget.ScanDocument(doc, activeConfig.ScanOptions())
	widgets := boundWidgets(doc)

	fmt.Printf("%s: %d widget(s), %d skipped declaration(s)\n", args[0], len(widgets), len(issues))
	for _, w := range widgets {
		fmt.Printf("  %-14s %s %s\n", w.Type().Name, w.ID(), describeNode(w.Node()))
		for _, d := range w.Type().Descriptors {
			value, ok := w.Get(d.Name)
			if !ok {
				continue
			}
			fmt.Printf("    %s = %v\n", d.Name, value)
		}
	}
	for _, issue := range issues {
		fmt.Printf("  skipped %s %s: %v\n", issue.TypeName, describeNode(issue.Node), issue.Err)
	}
	return nil
}
