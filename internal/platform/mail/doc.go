// Package mail sends outbound email over the SMTP transport described by
// config.MailConfig.
package mail
