package ports

import "context"

type CondaChannelPort interface {
	ChannelPackages(ctx context.Context, channel string) ([]string, error)
	ClearCache(channels ...string) error
}
