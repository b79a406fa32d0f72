package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app        = kingpin.New("ledsim", "LED grid and button simulator")
	debug      = app.Flag("debug", "Turn on debug logging.").Bool()
	configFile = app.Flag("config", "YAML configuration file. Palette changes are applied while running.").Short('c').ExistingFile()

	start    = app.Command("start", "Start the simulator demo")
	leds     = start.Flag("leds", "Number of LEDs.").Default("225").Int()
	rows     = start.Flag("rows", "Rows in the LED grid.").Default("15").Int()
	cols     = start.Flag("cols", "Columns in the LED grid.").Default("15").Int()
	buttons  = start.Flag("buttons", "Number of buttons.").Default("4").Int()
	headless = start.Flag("headless", "Render off screen instead of serving the preview page.").Bool()
	duration = start.Flag("duration", "Stop the simulation after this long. Zero runs until the window is closed.").Duration()
	snapshot = start.Flag("snapshot", "Save the last frame to this PNG file when running headless.").String()

	version = app.Command("version", "Print the version")
)

type colorFormatter struct {
	log.TextFormatter
}

func (f *colorFormatter) Format(entry *log.Entry) ([]byte, error) {
	var levelColor int
	switch entry.Level {
	case log.DebugLevel, log.TraceLevel:
		levelColor = 90 // dark grey
	case log.WarnLevel:
		levelColor = 33 // yellow
	case log.ErrorLevel, log.FatalLevel, log.PanicLevel:
		levelColor = 91 // bright red
	default:
		levelColor = 39 // default
	}
	return []byte(fmt.Sprintf("\x1b[%dm%s\x1b[0m\n", levelColor, entry.Message)), nil
}

func main() {
	cmd, err := app.Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("%v: Try --help\n", err.Error())
		os.Exit(1)
	}

	log.SetFormatter(&colorFormatter{})
	if *debug {
		log.Info("Enabling debug output...")
		log.SetLevel(log.DebugLevel)
	}

	switch cmd {
	case start.FullCommand():
		startSimulator()
	case version.FullCommand():
		showVersion()
	default:
		kingpin.FatalUsage("Unrecognized command")
	}
}
