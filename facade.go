package fonnte

import (
	"fmt"

	commanddispatcher "github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-fonnte/adapters/gocommand"
	fonntecommand "github.com/goliatone/go-fonnte/command"
	fonntequery "github.com/goliatone/go-fonnte/query"
)

// Gateway is the outbound surface the facade wraps. *Client satisfies it.
type Gateway interface {
	fonntecommand.Sender
	fonntequery.DeviceStatusReader
}

type Commands struct {
	SendMessage  *fonntecommand.SendMessageCommand
	SendMedia    *fonntecommand.SendMediaCommand
	SendDocument *fonntecommand.SendDocumentCommand
	SendButtons  *fonntecommand.SendButtonsCommand
	SendList     *fonntecommand.SendListCommand
}

type Queries struct {
	DeviceStatus *fonntequery.DeviceStatusQuery
}

type Facade struct {
	gateway  Gateway
	commands Commands
	queries  Queries
}

func NewFacade(gateway Gateway) (*Facade, error) {
	if gateway == nil {
		return nil, fmt.Errorf("fonnte: gateway is required")
	}
	return &Facade{
		gateway: gateway,
		commands: Commands{
			SendMessage:  fonntecommand.NewSendMessageCommand(gateway),
			SendMedia:    fonntecommand.NewSendMediaCommand(gateway),
			SendDocument: fonntecommand.NewSendDocumentCommand(gateway),
			SendButtons:  fonntecommand.NewSendButtonsCommand(gateway),
			SendList:     fonntecommand.NewSendListCommand(gateway),
		},
		queries: Queries{
			DeviceStatus: fonntequery.NewDeviceStatusQuery(gateway),
		},
	}, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Gateway() Gateway {
	if f == nil {
		return nil
	}
	return f.gateway
}

// Register adds every command and query to the registry and subscribes them
// on the go-command dispatcher. On failure the subscriptions made so far are
// released.
func (f *Facade) Register(adapter *gocommand.RegistryAdapter) ([]commanddispatcher.Subscription, error) {
	if f == nil {
		return nil, fmt.Errorf("fonnte: facade is nil")
	}
	subscriptions := make([]commanddispatcher.Subscription, 0, 6)
	release := func() {
		for _, sub := range subscriptions {
			if sub != nil {
				sub.Unsubscribe()
			}
		}
	}
	steps := []func() (commanddispatcher.Subscription, error){
		func() (commanddispatcher.Subscription, error) {
			return gocommand.RegisterAndSubscribe(adapter, f.commands.SendMessage)
		},
		func() (commanddispatcher.Subscription, error) {
			return gocommand.RegisterAndSubscribe(adapter, f.commands.SendMedia)
		},
		func() (commanddispatcher.Subscription, error) {
			return gocommand.RegisterAndSubscribe(adapter, f.commands.SendDocument)
		},
		func() (commanddispatcher.Subscription, error) {
			return gocommand.RegisterAndSubscribe(adapter, f.commands.SendButtons)
		},
		func() (commanddispatcher.Subscription, error) {
			return gocommand.RegisterAndSubscribe(adapter, f.commands.SendList)
		},
		func() (commanddispatcher.Subscription, error) {
			return gocommand.RegisterAndSubscribeQuery(adapter, f.queries.DeviceStatus)
		},
	}
	for _, step := range steps {
		sub, err := step()
		if err != nil {
			release()
			return nil, err
		}
		subscriptions = append(subscriptions, sub)
	}
	return subscriptions, nil
}
