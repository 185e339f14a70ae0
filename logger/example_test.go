package logger_test

import (
	"io"
	"time"

	"github.com/quarryhill/logway/logger"
)

func Example() {
	// "cmd" is the interactive profile: console only, DEBUG and up.
	// Writing to io.Discard keeps the example output stable.
	if err := logger.Configure("cmd", logger.Options{ConsoleWriter: io.Discard}); err != nil {
		panic(err)
	}
	defer logger.Close()

	log := logger.Get("myapp.views")
	log.Info("request handled",
		logger.String("user", "alice"),
		logger.Int("status", 200),
	)

	// Delivery is asynchronous; flush before exit.
	logger.Flush(2 * time.Second)
	// Output:
}

func ExampleLogger_Exception() {
	if err := logger.Configure("cmd", logger.Options{ConsoleWriter: io.Discard}); err != nil {
		panic(err)
	}
	defer logger.Close()

	log := logger.Get("myapp.jobs")
	if err := runBillingJob(); err != nil {
		log.Exception("billing job failed", err, logger.String("job", "billing"))
	}

	logger.Flush(2 * time.Second)
	// Output:
}

func runBillingJob() error { return nil }
