// Command padprobe reports which controller profile an identifier string
// resolves to, and why.
//
//	padprobe "Xbox Wireless Controller" "2dc8-6003-Wireless Gamepad"
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/pflag"

	"github.com/soar/inputview/internal/gamepad"
)

func main() {
	profilesFile := pflag.String("profiles-file", "", "YAML file with extra controller profiles")
	list := pflag.Bool("list", false, "list profiles in match order and exit")
	noColor := pflag.Bool("no-color", false, "disable colored output")
	pflag.Parse()

	au := aurora.NewAurora(!*noColor)

	db := gamepad.DefaultDatabase()
	if *profilesFile != "" {
		extra, err := gamepad.LoadProfilesFile(*profilesFile)
		if err == nil {
			db, err = db.WithProfiles(extra...)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, au.Red(err))
			os.Exit(1)
		}
	}

	if *list {
		for i, p := range db.Profiles() {
			fmt.Printf("%2d. %s\n", i+1, au.Bold(p.Name))
		}
		return
	}

	ids := pflag.Args()
	if len(ids) == 0 {
		var err error
		if ids, err = readLines(os.Stdin); err != nil {
			fmt.Fprintln(os.Stderr, au.Red(err))
			os.Exit(1)
		}
	}

	for _, id := range ids {
		printDetection(au, id, db.Detect(id))
	}
}

func printDetection(au aurora.Aurora, id string, det gamepad.Detection) {
	name := au.Green(det.Profile.Name)
	if det.Fallback() {
		name = au.Yellow(det.Profile.Name)
	}

	fmt.Printf("%q\n", id)
	fmt.Printf("  profile: %s\n", au.Bold(name))
	fmt.Printf("  reason:  %s %s\n", au.Cyan(det.Reason), det.Detail)
	if det.IDs != nil {
		fmt.Printf("  codes:   vendor=%s product=%s\n", det.IDs.Vendor, det.IDs.Product)
	} else {
		fmt.Printf("  codes:   %s\n", au.Gray(12, "none parsed"))
	}
}

func readLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out = append(out, line)
		}
	}
	return out, sc.Err()
}
