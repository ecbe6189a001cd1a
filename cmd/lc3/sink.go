package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

// EXT_DEBUG is the file name extension of a debug sink.
const EXT_DEBUG = ".debug"

// SUCCESS is logged to the debug sink when a run succeeds.
const SUCCESS = "Success!!"

// debugSink logs a run to a file.
type debugSink struct {
	file *os.File
	log  *logrus.Logger
}

func newDebugSink(path string) (sink *debugSink, err error) {
	file, err := os.Create(path + EXT_DEBUG)
	if err != nil {
		return
	}

	log := logrus.New()
	log.SetOutput(file)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableQuote: true})

	sink = &debugSink{file: file, log: log}
	return
}

// finish records the outcome of the run and closes the sink.
func (sink *debugSink) finish(err error) error {
	if err != nil {
		sink.log.Error(err)
	} else {
		sink.log.Info(SUCCESS)
	}

	cerr := sink.file.Close()
	if err == nil {
		err = cerr
	}

	return err
}
