package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ThreadLogger prefixes every line with the name of the goroutine that owns it
type ThreadLogger struct {
	name string
}

// Printf - log.Printf with the thread name in front
func (tl *ThreadLogger) Printf(format string, v ...interface{}) {
	log.Output(2, fmt.Sprintf("[%s] ", tl.name)+fmt.Sprintf(format, v...))
}

// Println - log.Println with the thread name in front
func (tl *ThreadLogger) Println(v ...interface{}) {
	log.Output(2, fmt.Sprintf("[%s] ", tl.name)+fmt.Sprintln(v...))
}

// send the std logger to a rotating file, optionally echoed to stdout
func setupLogging(settings configSettings, echo bool) (*lumberjack.Logger, error) {
	logFile := settings.GetString(sLogFile)
	if logFile == "" {
		return nil, errors.New("no log file configured")
	}

	// fail early if the file can't be created, lumberjack would only
	// tell us on the first write
	f, err := os.OpenFile(logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "log file %s", logFile)
	}
	f.Close()

	logger := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    settings.GetInt(sLogMaxSize),
		MaxBackups: settings.GetInt(sLogMaxBackups),
	}

	var out io.Writer = logger
	if echo {
		out = io.MultiWriter(os.Stdout, logger)
	}
	log.SetOutput(out)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)

	return logger, nil
}
