package run

// Bundled CA certificates, so that HTTPS clients work in containers without a
// system trust store. Every binary imports run.
import _ "golang.org/x/crypto/x509roots/fallback"
