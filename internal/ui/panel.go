package ui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/lazyvibe/startboard/internal/event"
	"github.com/lazyvibe/startboard/internal/host"
	"github.com/lazyvibe/startboard/internal/protocol"
	"github.com/lazyvibe/startboard/internal/webview"
)

// ErrPanelDisposed is returned when using a panel after it closed.
var ErrPanelDisposed = errors.New("panel is disposed")

// Panel is a dashboard running as a bubbletea program. It implements
// webview.Panel.
//
// Messages in both directions pass through mailboxes drained by their own
// goroutines, so neither the core nor the event loop waits on the other.
type Panel struct {
	opts    webview.Options
	program *tea.Program
	logger  *zap.Logger

	inbox  *mailbox[protocol.Inbound]
	outbox *mailbox[protocol.Outbound]

	messages event.Emitter[protocol.Inbound]
	disposed event.Emitter[struct{}]

	mu      sync.Mutex
	started bool
	closed  bool
	visible bool
	done    chan struct{}
}

var _ webview.Panel = (*Panel)(nil)

func newPanel(ctx context.Context, opts webview.Options, commands []Command, programOpts []tea.ProgramOption, logger *zap.Logger) *Panel {
	p := &Panel{
		opts:   opts,
		logger: logger,
		inbox:  newMailbox[protocol.Inbound](),
		outbox: newMailbox[protocol.Outbound](),
		done:   make(chan struct{}),
	}
	app := newApp(hooks{ctx: ctx, emit: p.emit, setVisible: p.setVisible}, commands, logger)
	p.program = tea.NewProgram(app, programOpts...)
	return p
}

// Load starts the program. The dashboard emits Ready once it is running.
func (p *Panel) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPanelDisposed
	}
	if p.started {
		p.mu.Unlock()
		return nil
	}
	p.started = true
	p.visible = true
	p.mu.Unlock()

	go p.inbox.drain(p.messages.Fire)
	go p.outbox.drain(func(msg protocol.Outbound) {
		p.program.Send(outboundMsg{msg: msg})
	})
	go p.run()
	return nil
}

func (p *Panel) run() {
	if _, err := p.program.Run(); err != nil {
		p.logger.Error("dashboard stopped", zap.String("view", p.opts.ViewType), zap.Error(err))
	}
	p.finish()
}

// Post queues msg for the dashboard.
func (p *Panel) Post(msg protocol.Outbound) error {
	if !p.outbox.push(msg) {
		return ErrPanelDisposed
	}
	return nil
}

// Reveal redraws the dashboard.
func (p *Panel) Reveal() {
	if p.running() {
		p.program.Send(revealMsg{})
	}
}

// Dispose closes the dashboard.
func (p *Panel) Dispose() {
	p.mu.Lock()
	closed, started := p.closed, p.started
	p.mu.Unlock()
	if closed {
		return
	}
	if started {
		// run finishes the panel once the program exits.
		p.program.Quit()
		return
	}
	p.finish()
}

// Visible reports whether the dashboard is on screen.
func (p *Panel) Visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible && !p.closed
}

// OnMessage registers fn for messages the dashboard emits.
func (p *Panel) OnMessage(fn func(protocol.Inbound)) event.Subscription {
	return p.messages.Subscribe(fn)
}

// OnDispose registers fn to run when the panel closes.
func (p *Panel) OnDispose(fn func()) event.Subscription {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		fn()
		return event.SubscriptionFunc(nil)
	}
	sub := p.disposed.Subscribe(func(struct{}) { fn() })
	p.mu.Unlock()
	return sub
}

// Done is closed when the panel is disposed.
func (p *Panel) Done() <-chan struct{} {
	return p.done
}

func (p *Panel) running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started && !p.closed
}

func (p *Panel) emit(msg protocol.Inbound) {
	p.inbox.push(msg)
}

func (p *Panel) setVisible(v bool) {
	p.mu.Lock()
	p.visible = v
	p.mu.Unlock()
}

func (p *Panel) finish() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.visible = false
	p.mu.Unlock()

	p.inbox.close()
	p.outbox.close()
	p.disposed.Fire(struct{}{})
	p.disposed.Clear()
	p.messages.Clear()
	close(p.done)
}

// prompt shows n as a dialog and waits for the answer.
func (p *Panel) prompt(ctx context.Context, n host.Notification) (string, error) {
	reply := make(chan string, 1)
	p.program.Send(promptMsg{notification: n, reply: reply})
	select {
	case choice := <-reply:
		return choice, nil
	case <-p.done:
		select {
		case choice := <-reply:
			return choice, nil
		default:
			return "", nil
		}
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// toast shows n in the status bar.
func (p *Panel) toast(n host.Notification) {
	p.program.Send(toastMsg{notification: n})
}
