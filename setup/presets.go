package setup

import (
	"github.com/quarryhill/logway/core"
	"github.com/quarryhill/logway/dispatch"
	"github.com/quarryhill/logway/sink"
)

// preset describes which sinks a named profile enables and its default
// minimum severity.
type preset struct {
	level core.Level

	console, file, mail, syslog, tlssysl, sns bool
}

var presets = map[string]preset{
	"cmd": {level: core.DebugLevel, console: true},
	"job": {level: core.InfoLevel, file: true, mail: true, syslog: true, tlssysl: true, sns: true},
	"web": {level: core.InfoLevel, file: true, mail: true, syslog: true, tlssysl: true, sns: true},
	"twd": {level: core.InfoLevel, syslog: true, tlssysl: true, sns: true},
	"srp": {level: core.InfoLevel, mail: true, syslog: true, tlssysl: true, sns: true},
}

// sinkConfigs expands a preset into concrete sink configurations, using
// only the destinations opts actually provides. Email and SNS carry
// ERROR thresholds and email queues use the Block policy: losing an
// alert silently is worse than a bounded stall on an audit-grade sink.
func (p preset) sinkConfigs(opts Options) []SinkConfig {
	var cfgs []SinkConfig

	if p.console || opts.ConsoleWriter != nil {
		cfgs = append(cfgs, SinkConfig{
			Kind:     sink.KindConsole,
			MinLevel: p.level,
			Writer:   opts.ConsoleWriter,
		})
	}

	if p.file && opts.FilePath != "" {
		cfgs = append(cfgs, SinkConfig{
			Kind:     sink.KindFile,
			MinLevel: core.WarningLevel,
			File:     sink.FileConfig{Path: opts.FilePath},
		})
	}

	if p.mail {
		switch {
		case opts.Mandrill.APIKey != "":
			cfgs = append(cfgs, SinkConfig{
				Kind:     sink.KindMandrill,
				MinLevel: core.ErrorLevel,
				Overflow: dispatch.Block,
				Mandrill: opts.Mandrill,
			})
		case opts.SMTP.Host != "":
			cfgs = append(cfgs, SinkConfig{
				Kind:     sink.KindSMTP,
				MinLevel: core.ErrorLevel,
				Overflow: dispatch.Block,
				SMTP:     opts.SMTP,
			})
		}
	}

	if p.syslog && opts.Syslog.Host != "" {
		cfg := opts.Syslog
		if cfg.Tag == "" {
			cfg.Tag = opts.App
		}
		cfgs = append(cfgs, SinkConfig{
			Kind:     sink.KindSyslog,
			MinLevel: core.InfoLevel,
			Syslog:   cfg,
		})
	}

	if p.tlssysl && opts.TLSSyslog.Host != "" {
		cfg := opts.TLSSyslog
		if cfg.Tag == "" {
			cfg.Tag = opts.App
		}
		cfgs = append(cfgs, SinkConfig{
			Kind:     sink.KindTLSSyslog,
			MinLevel: core.InfoLevel,
			Syslog:   cfg,
		})
	}

	if p.sns && opts.SNSTopicARN != "" {
		cfgs = append(cfgs, SinkConfig{
			Kind:     sink.KindSNS,
			MinLevel: core.ErrorLevel,
			SNS:      sink.SNSConfig{TopicARN: opts.SNSTopicARN},
		})
	}

	if opts.WebhookURL != "" {
		cfgs = append(cfgs, SinkConfig{
			Kind:     sink.KindWebhook,
			MinLevel: core.InfoLevel,
			Webhook:  sink.WebhookConfig{URL: opts.WebhookURL},
		})
	}

	return cfgs
}
