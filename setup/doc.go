// Package setup owns the process-wide logging configuration: named
// profiles ("setups") mapping to ordered sink lists with severity
// thresholds, the interception rules routing logger names to setups,
// and the dispatch queues fronting every activated sink.
//
// State is initialized by the first Configure call and replaced only
// through explicit reconfiguration: every mutation builds a complete new
// state and installs it with a single atomic pointer swap, so concurrent
// emitters never observe a partially updated setup. When a registration
// replaces a profile of the same name, the old profile's queues drain in
// the background rather than being aborted; the last successful
// registration wins.
//
// Five preset profiles mirror common application shapes:
//
//	cmd — interactive command line: console only, DEBUG
//	job — background job: file, email, syslog, TLS syslog, SNS
//	web — web application: same sink set as job
//	twd — event-loop service: syslog, TLS syslog, SNS
//	srp — scraper job: email, syslog, TLS syslog, SNS
//
// Any other name may be registered explicitly with Register and
// activated with Configure.
package setup
