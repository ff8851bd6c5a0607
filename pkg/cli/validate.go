package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/probelab-dev/webprobe/pkg/validator"
)

var validateCommand = &cli.Command{
	Name:      "validate",
	Usage:     "Check flow files without running them",
	ArgsUsage: "<flow-file-or-folder>...",
	Description: `Parse and check flow files, reporting every problem at once.

Examples:
  webprobe validate flows/
  webprobe validate login.yaml checkout.yaml`,
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "include-tags",
			Usage: "Only include flows with these tags",
		},
		&cli.StringSliceFlag{
			Name:  "exclude-tags",
			Usage: "Exclude flows with these tags",
		},
	},
	Action: runValidate,
}

func runValidate(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("no flow files given")
	}

	v := validator.New(c.StringSlice("include-tags"), c.StringSlice("exclude-tags"))

	valid := true
	for _, path := range c.Args().Slice() {
		result := v.Validate(path)
		for _, file := range result.Files {
			passMark.Printf("  ✓ ")
			fmt.Println(file)
		}
		for _, err := range result.Errors {
			failMark.Printf("  ✗ ")
			fmt.Println(err)
			valid = false
		}
	}

	if !valid {
		return cli.Exit("", 1)
	}
	return nil
}
