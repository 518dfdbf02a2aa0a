package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/term"
)

var wg sync.WaitGroup

// segscroll -config={config file}

func main() {
	configFile := flag.String("config", defaultConfigFile, "configuration file")
	echo := flag.Bool("echo", false, "echo the log to stdout")
	flag.Parse()

	// read config information
	settings := initSettings(*configFile)

	logger, err := setupLogging(settings, *echo)
	if err != nil {
		log.Fatalf("Could not set up logging: %v", err)
	}
	defer logger.Close()

	// dump them (debugging)
	log.Println(">>> Settings <<<")
	settings.Dump()
	log.Println(">>> Settings <<<")

	// termbox owns the terminal for simulated buttons, don't let it grab a pipe
	if settings.GetBool(sButtonSimulated) && !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Println("stdin is not a terminal, simulated buttons disabled")
		settings.settings[sButtonSimulated] = false
		settings.settings[sDimButton] = -1
		settings.settings[sPauseButton] = -1
	}

	display, units, err := openDisplay(settings)
	if err != nil {
		log.Fatalf("Could not open display: %v", err)
	}
	defer units.Close()

	c, err := newContent(settings)
	if err != nil {
		log.Fatalf("Could not load content: %v", err)
	}
	defer c.close()

	rt := initRuntime(settings, display, c)

	// ^C and kill end every worker
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			log.Printf("Got %v, shutting down", sig)
			closeQuit(rt.comms)
		case <-rt.comms.quit:
		}
	}()

	startDisplay(rt)
	startWatchButtons(rt)
	startConfigService(rt)

	wg.Wait()
	log.Println("exiting")
}
