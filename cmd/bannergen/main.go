/*
Command bannergen creates welcome banners from the command line.

	bannergen -title "Welcome 𝑨𝒍𝒊𝒄𝒆" -avatar alice.png -theme gaming -out alice.png

Fonts are taken from a font catalogue (flag -catalog, default is the
built-in catalogue of common Linux fonts). With -demo the Go fonts are
installed to the user's cache directory and used instead. Flag -fonts
prints the font priority list, -report prints which fonts have been used
for which characters.

With -i the command enters an interactive mode: every line typed in is
segmented and the segments are printed.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/npillmayer/banner/core"
	"github.com/npillmayer/banner/engine/banner"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'banner.banner'
func tracer() tracing.Trace {
	return tracing.Select("banner.banner")
}

var traceKeys = []string{"banner.fonts", "banner.resources", "banner.text", "banner.gfx", "banner.banner"}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	confpath := flag.String("config", "", "Banner configuration file (YAML)")
	catalog := flag.String("catalog", "", "Font catalogue file (YAML)")
	demo := flag.Bool("demo", false, "Use the Go fonts instead of system fonts")
	addfont := flag.String("addfont", "", "URL of a font to download and prefer over all others")
	listFonts := flag.Bool("fonts", false, "Print the font priority list and exit")
	interactive := flag.Bool("i", false, "Interactive segmentation")
	size := flag.Int("size", 100, "Font size for interactive segmentation")
	report := flag.Bool("report", false, "Print a font usage report")
	out := flag.String("out", "banner.png", "Output file")
	req := banner.Request{}
	flag.StringVar(&req.Title, "title", "", "Title text")
	flag.StringVar(&req.Subtitle, "subtitle", "", "Subtitle text")
	flag.StringVar(&req.Header, "header", "", "Header text")
	flag.StringVar(&req.Footer, "footer", "", "Footer text")
	flag.StringVar(&req.Suffix, "suffix", "", "Text following the title")
	flag.BoolVar(&req.Strikeout, "strikeout", false, "Strike through the title")
	flag.StringVar(&req.TitleColor, "color", "", "Title color as hex, e.g. #ff8800")
	flag.StringVar(&req.Avatar, "avatar", "", "Avatar image, file or URL")
	flag.StringVar(&req.Background, "bg", "", "Background image, file or URL")
	flag.StringVar(&req.Theme, "theme", "", fmt.Sprintf("Theme %v", banner.ThemeNames()))
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		conf["trace."+key] = *tlevel
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Infof("Trace level is %s", *tlevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// set up the generator
	bconf := banner.DefaultConfig()
	if *confpath != "" {
		var err error
		if bconf, err = banner.LoadConfig(*confpath); err != nil {
			fail(err, 2)
		}
	}
	if *catalog != "" {
		bconf.Catalog = *catalog
	}
	if *demo {
		path, err := installDemoFonts()
		if err != nil {
			fail(err, 2)
		}
		bconf.Catalog = path
	}
	gen, err := banner.NewGeneratorFromConfig(bconf)
	if err != nil {
		fail(err, 3)
	}
	registry := gen.Renderer().Segmenter().Registry()
	if *addfont != "" {
		if err := downloadFont(ctx, registry, *addfont); err != nil {
			fail(err, 3)
		}
	}
	if *listFonts {
		printFontList(registry)
		return
	}
	if *interactive {
		intp, err := newIntp(gen, *size)
		if err != nil {
			fail(err, 4)
		}
		pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
		intp.REPL()
		return
	}
	if req.Title == "" {
		pterm.Error.Println("no title given, see -help")
		os.Exit(5)
	}

	// generate the banner
	result, err := gen.Generate(ctx, req)
	if err != nil {
		fail(err, 6)
	}
	if err := os.WriteFile(*out, result.PNG, 0644); err != nil {
		fail(core.WrapError(err, core.EINVALID, "cannot write %s", *out), 7)
	}
	pterm.Success.Printfln("banner written to %s (%d bytes, title at %dpx)", *out, len(result.PNG), result.TitleSize)
	if *report {
		printUsageReport(result.Usage, registry.PriorityList())
	} else if n := len(result.Usage.Unsupported()); n > 0 {
		pterm.Warning.Printfln("%d characters not supported by any font, see -report", n)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func fail(err error, exitcode int) {
	tracer().Errorf(err.Error())
	pterm.Error.Println(core.UserMessage(err))
	os.Exit(exitcode)
}
