// Package credential supplies the username and password used to log in to the
// portal.  Credentials come from the process environment or from an encrypted
// secret managed with viant/scy, and are never rendered in cleartext by the
// logging or formatting paths.
package credential
