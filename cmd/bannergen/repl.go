package main

import (
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/banner/backend/gfx"
	"github.com/npillmayer/banner/core"
	"github.com/npillmayer/banner/core/font/fontregistry"
	"github.com/npillmayer/banner/engine/banner"
	"github.com/pterm/pterm"
)

// Intp is our interpreter object
type Intp struct {
	gen       *banner.Generator
	repl      *readline.Instance
	size      int
	preferred string
	usage     *fontregistry.Usage // accumulated over all lines
	measure   *gfx.Canvas
}

func newIntp(gen *banner.Generator, size int) (*Intp, error) {
	repl, err := readline.New("seg > ")
	if err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "cannot set up line editor")
	}
	return &Intp{
		gen:     gen,
		repl:    repl,
		size:    size,
		usage:   fontregistry.NewUsage(),
		measure: gfx.NewCanvas(1, 1),
	}, nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	defer intp.repl.Close()
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if quit := intp.execute(line[1:]); quit {
				break
			}
			continue
		}
		intp.segment(line)
	}
	pterm.Info.Println("Good bye!")
}

// execute runs a command, e.g. ":size 80". It returns true for ":quit".
func (intp *Intp) execute(cmd string) bool {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		help()
		return false
	}
	arg := strings.Join(fields[1:], " ")
	tracer().Debugf("command %q, argument %q", fields[0], arg)
	switch strings.ToLower(fields[0]) {
	case "quit", "q":
		return true
	case "size":
		n, err := strconv.Atoi(arg)
		if err != nil || n <= 0 {
			pterm.Error.Printfln("size must be a positive number: %q", arg)
			return false
		}
		intp.size = n
		pterm.Info.Printfln("font size is %dpx", n)
	case "font":
		intp.preferred = arg
		if arg == "" {
			pterm.Info.Println("no preferred font")
		} else if !intp.registry().IsAvailable(arg) {
			pterm.Warning.Printfln("font %s is not available", arg)
		}
	case "fonts":
		printFontList(intp.registry())
	case "report":
		printUsageReport(intp.usage, intp.registry().PriorityList())
	case "clear":
		intp.usage.Clear()
	default:
		help()
	}
	return false
}

func (intp *Intp) registry() *fontregistry.Registry {
	return intp.gen.Renderer().Segmenter().Registry()
}

func (intp *Intp) segment(line string) {
	r := intp.gen.Renderer()
	segments, usage := r.Segmenter().Segment(line, intp.size, intp.preferred)
	intp.usage.Merge(usage)
	data := pterm.TableData{{"Text", "Font", "Size", "Fallback", "Adjustment"}}
	for _, s := range segments {
		adj := "-"
		if s.Adjusted {
			adj = s.Adjustment.String()
		}
		font := s.Font
		if font == "" {
			font = "(none)"
		}
		data = append(data, []string{strconv.Quote(s.Text), font, strconv.Itoa(s.Size),
			strconv.FormatBool(s.Fallback), adj})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		tracer().Errorf(err.Error())
	}
	w, err := r.Width(intp.measure, line, intp.size, intp.preferred)
	if err != nil {
		pterm.Error.Println(core.UserMessage(err))
		return
	}
	pterm.Info.Printfln("%d segments, %dpx wide", len(segments), w)
	if n := len(usage.Unsupported()); n > 0 {
		pterm.Warning.Printfln("%d characters without font", n)
	}
}

func help() {
	pterm.Info.Println("Segmentation inspector")
	pterm.Print(`
Type a line of text to see how it is split into font runs.

Commands:
   :size <n>      set the nominal font size in pixels
   :font <name>   set the preferred font, empty for none
   :fonts         print the font priority list
   :report        print the fonts used so far
   :clear         forget the fonts used so far
   :quit          leave
` + "\n")
}
