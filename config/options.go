// Package config holds the runtime options for the trackinventory client app.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/trackinventory/trackinventory/internal/fileutil"
	"github.com/trackinventory/trackinventory/internal/urlutil"
)

// Options are the configurable knobs of the client app. They are loaded from
// an optional config file and from TRACKINVENTORY_* environment variables.
type Options struct {
	// Addr is the local address the app surface listens on.
	Addr string `mapstructure:"address" yaml:"address,omitempty"`

	// APIURLString is the base URL of the Track Inventory backend API.
	APIURLString string `mapstructure:"api_url" yaml:"api_url,omitempty"`

	// SessionFile is where the persisted session record is kept. Defaults to
	// a file under the user data directory.
	SessionFile string `mapstructure:"session_file" yaml:"session_file,omitempty"`

	// CheckoutAddr is the loopback address the payment callback listener
	// binds to. Port zero picks a free port.
	CheckoutAddr string `mapstructure:"checkout_address" yaml:"checkout_address,omitempty"`

	// CheckoutPageURLString is the hosted payment gateway checkout page.
	CheckoutPageURLString string `mapstructure:"checkout_page_url" yaml:"checkout_page_url,omitempty"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level,omitempty"`

	ReadTimeout  time.Duration `mapstructure:"timeout_read" yaml:"timeout_read,omitempty"`
	WriteTimeout time.Duration `mapstructure:"timeout_write" yaml:"timeout_write,omitempty"`
	IdleTimeout  time.Duration `mapstructure:"timeout_idle" yaml:"timeout_idle,omitempty"`

	viper *viper.Viper
}

// DefaultOptions are the default configuration options for the app.
var defaultOptions = Options{
	Addr:                  "127.0.0.1:8321",
	APIURLString:          "https://api.trackinventory.in",
	CheckoutAddr:          "127.0.0.1:0",
	CheckoutPageURLString: "https://checkout.razorpay.com/v1/checkout.html",
	LogLevel:              "info",
	ReadTimeout:           30 * time.Second,
	WriteTimeout:          0, // support streaming by default
	IdleTimeout:           5 * time.Minute,
}

// NewDefaultOptions returns a copy of the default options. It's the caller's
// responsibility to validate them.
func NewDefaultOptions() *Options {
	newOpts := defaultOptions
	newOpts.viper = viper.New()
	return &newOpts
}

// NewOptions loads the options from the given config file (optional) and from
// the environment, then validates them.
func NewOptions(configFile string) (*Options, error) {
	o, err := optionsFromViper(configFile)
	if err != nil {
		return nil, fmt.Errorf("config: options from config file %q: %w", configFile, err)
	}
	return o, nil
}

func optionsFromViper(configFile string) (*Options, error) {
	o := NewDefaultOptions()
	v := o.viper
	v.SetEnvPrefix("TRACKINVENTORY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := bindEnvs(v); err != nil {
		return nil, fmt.Errorf("failed to bind options to env vars: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := v.Unmarshal(o, viperDecodeHooks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	// v.Unmarshal overwrites the viper field.
	o.viper = v

	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("validation error %w", err)
	}
	return o, nil
}

// viperDecodeHooks parses durations in config files written as strings.
var viperDecodeHooks = viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
	mapstructure.StringToTimeDurationHookFunc(),
	mapstructure.StringToSliceHookFunc(","),
))

// bindEnvs binds every tagged option key to its TRACKINVENTORY_ env var so
// viper picks the vars up even without a config file.
func bindEnvs(v *viper.Viper) error {
	for _, key := range []string{
		"address",
		"api_url",
		"session_file",
		"checkout_address",
		"checkout_page_url",
		"log_level",
		"timeout_read",
		"timeout_write",
		"timeout_idle",
	} {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind field %q: %w", key, err)
		}
	}
	return nil
}

// Validate ensures the Options are complete and internally consistent.
func (o *Options) Validate() error {
	if o.Addr == "" {
		return errors.New("config: address is required")
	}
	if o.APIURLString == "" {
		return errors.New("config: api_url is required")
	}
	if _, err := urlutil.ParseAndValidateURL(o.APIURLString); err != nil {
		return fmt.Errorf("config: bad api_url %s: %w", o.APIURLString, err)
	}
	if o.CheckoutPageURLString != "" {
		if _, err := urlutil.ParseAndValidateURL(o.CheckoutPageURLString); err != nil {
			return fmt.Errorf("config: bad checkout_page_url %s: %w", o.CheckoutPageURLString, err)
		}
	}
	if o.SessionFile == "" {
		o.SessionFile = filepath.Join(fileutil.DataDir(), "session.json")
	}
	return nil
}

// GetAPIURL returns the backend API base URL. Options must be validated first.
func (o *Options) GetAPIURL() *url.URL {
	u, _ := urlutil.ParseAndValidateURL(o.APIURLString)
	return u
}

// GetCheckoutPageURL returns the hosted checkout page URL.
func (o *Options) GetCheckoutPageURL() *url.URL {
	u, _ := urlutil.ParseAndValidateURL(o.CheckoutPageURLString)
	return u
}
