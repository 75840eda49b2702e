package domain

// ChannelType identifies a notification delivery channel.
type ChannelType string

// Supported channel types.
const (
	ChannelTypeEmail    ChannelType = "email"
	ChannelTypeTelegram ChannelType = "telegram"
)
