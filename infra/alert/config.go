package alert

// Config defines the alert distribution settings.
type Config struct {
	Enabled     bool   `json:"enabled"`
	Broker      string `json:"broker"`
	ClientID    string `json:"client_id"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	TopicPrefix string `json:"topic_prefix"`
	QoS         byte   `json:"qos"`
	RedisURL    string `json:"redis_url"`
	WebhookURL  string `json:"webhook_url"`
	TTLSeconds  int    `json:"ttl_seconds"`
}

// SetDefaults applies fallback values for optional fields.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "microgrid-alerts"
	}
	if c.TopicPrefix == "" {
		c.TopicPrefix = "microgrid/alerts"
	}
	if c.TTLSeconds <= 0 {
		c.TTLSeconds = 3600
	}
}
