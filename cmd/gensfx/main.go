// Command gensfx writes the game's procedurally generated sound effects as
// WAV files.
package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
	"github.com/gopxl/beep"

	"badc0de.net/pkg/greeny-assets/sfx"
)

var (
	outDir     = flag.String("out_dir", "assets/audio", "directory to write .wav files to")
	only       = flag.String("only", "", "comma separated effect names to generate; empty for all")
	sampleRate = flag.Int("sample_rate", int(sfx.DefaultSampleRate), "sample rate in Hz")
	list       = flag.Bool("list", false, "list the known effects and exit")
)

func selected() ([]sfx.Recipe, error) {
	if *only == "" {
		return sfx.Recipes(), nil
	}
	var rs []sfx.Recipe
	for _, name := range strings.Split(*only, ",") {
		r, ok := sfx.Lookup(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown effect %q", name)
		}
		rs = append(rs, r)
	}
	return rs, nil
}

func main() {
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if *list {
		for _, r := range sfx.Recipes() {
			fmt.Printf("%-18s %v\n", r.Name, r.Duration)
		}
		return
	}

	rs, err := selected()
	if err != nil {
		glog.Exitf("%v", err)
	}
	for _, r := range rs {
		path := filepath.Join(*outDir, r.Name+".wav")
		if err := sfx.WriteWAV(path, r, beep.SampleRate(*sampleRate)); err != nil {
			glog.Exitf("%v", err)
		}
		fmt.Printf("Saved: %s\n", path)
	}
}
