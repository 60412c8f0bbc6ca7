package shellpicker

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/dockbash/internal/containers"
	"github.com/temirov/dockbash/internal/selection"
)

const (
	listingFailedMessageConstant        = "container listing failed"
	containersListedMessageConstant     = "containers listed"
	containersFilteredMessageConstant   = "containers with shell"
	selectionDismissedMessageConstant   = "selection dismissed"
	launchFailedMessageConstant         = "terminal launch failed"
	selectionFailureTemplateConstant    = "unable to present containers: %w"
	unknownSelectionTemplateConstant    = "selected entry %q does not match a listed container"
	logFieldContainerCountConstant      = "container_count"
	logFieldCandidateCountConstant      = "candidate_count"
	logFieldSelectedIdentifierConstant  = "container_id"
	serviceDependencyMissingMessage     = "shell picker dependencies not configured"
	outcomeLaunchedDescriptionConstant  = "launched"
	outcomeDismissedDescriptionConstant = "dismissed"
	outcomeFailedDescriptionConstant    = "failed"
	outcomeLaunchFailedDescription      = "launch failed"
)

// ErrDependenciesNotConfigured indicates the service was built without a collaborator.
var ErrDependenciesNotConfigured = errors.New(serviceDependencyMissingMessage)

// Outcome reports how a picker run ended.
type Outcome int

// Picker outcomes.
const (
	// OutcomeFailed means the run stopped before a launch was attempted; the accompanying error explains why.
	OutcomeFailed Outcome = iota
	// OutcomeDismissed means the list was shown and closed without a choice.
	OutcomeDismissed
	// OutcomeLaunched means a terminal session was started.
	OutcomeLaunched
	// OutcomeLaunchFailed means a container was chosen but its terminal could
	// not be started. The failure is logged, not returned.
	OutcomeLaunchFailed
)

// String describes the outcome for logs.
func (outcome Outcome) String() string {
	switch outcome {
	case OutcomeLaunched:
		return outcomeLaunchedDescriptionConstant
	case OutcomeDismissed:
		return outcomeDismissedDescriptionConstant
	case OutcomeLaunchFailed:
		return outcomeLaunchFailedDescription
	default:
		return outcomeFailedDescriptionConstant
	}
}

// ContainerLister enumerates running containers.
type ContainerLister interface {
	ListContainers(executionContext context.Context) ([]containers.Container, error)
}

// ShellProber keeps the containers that can run the shell.
type ShellProber interface {
	FilterWithShell(executionContext context.Context, candidates []containers.Container) []containers.Container
}

// EntryPresenter shows entries and returns the chosen one.
type EntryPresenter interface {
	Choose(executionContext context.Context, entries []selection.Entry) (selection.Entry, bool, error)
}

// SessionLauncher opens a terminal session for a container.
type SessionLauncher interface {
	Launch(container containers.Container) error
}

// Service runs the list, probe, present and launch flow.
type Service struct {
	logger    *zap.Logger
	lister    ContainerLister
	prober    ShellProber
	presenter EntryPresenter
	launcher  SessionLauncher
}

// NewService wires the collaborators of one picker run.
func NewService(logger *zap.Logger, lister ContainerLister, prober ShellProber, presenter EntryPresenter, launcher SessionLauncher) (*Service, error) {
	if lister == nil || prober == nil || presenter == nil || launcher == nil {
		return nil, ErrDependenciesNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger, lister: lister, prober: prober, presenter: presenter, launcher: launcher}, nil
}

// Run executes the picker once. A listing failure stops the flow before
// anything is shown and is returned. A launch failure happens after the picker
// was shown; it is logged and reported as OutcomeLaunchFailed without an error.
func (service *Service) Run(executionContext context.Context) (Outcome, error) {
	listedContainers, candidates, listingError := collectShellContainers(executionContext, service.logger, service.lister, service.prober)
	if listingError != nil {
		return OutcomeFailed, listingError
	}

	entries := BuildEntries(candidates, NameWidth(listedContainers))
	chosenEntry, chosen, chooseError := service.presenter.Choose(executionContext, entries)
	if chooseError != nil {
		return OutcomeFailed, fmt.Errorf(selectionFailureTemplateConstant, chooseError)
	}
	if !chosen {
		service.logger.Debug(selectionDismissedMessageConstant)
		return OutcomeDismissed, nil
	}

	chosenContainer, found := findContainer(candidates, chosenEntry.Identifier)
	if !found {
		return OutcomeFailed, fmt.Errorf(unknownSelectionTemplateConstant, chosenEntry.Identifier)
	}

	if launchError := service.launcher.Launch(chosenContainer); launchError != nil {
		service.logger.Error(
			launchFailedMessageConstant,
			zap.String(logFieldSelectedIdentifierConstant, chosenContainer.ID),
			zap.Error(launchError),
		)
		return OutcomeLaunchFailed, nil
	}
	return OutcomeLaunched, nil
}

// collectShellContainers returns the full listing and the containers that passed the probe.
func collectShellContainers(executionContext context.Context, logger *zap.Logger, lister ContainerLister, prober ShellProber) ([]containers.Container, []containers.Container, error) {
	listedContainers, listingError := lister.ListContainers(executionContext)
	if listingError != nil {
		logger.Debug(listingFailedMessageConstant, zap.Error(listingError))
		return nil, nil, listingError
	}
	logger.Debug(containersListedMessageConstant, zap.Int(logFieldContainerCountConstant, len(listedContainers)))

	candidates := prober.FilterWithShell(executionContext, listedContainers)
	logger.Debug(containersFilteredMessageConstant, zap.Int(logFieldCandidateCountConstant, len(candidates)))
	return listedContainers, candidates, nil
}

func findContainer(candidates []containers.Container, identifier string) (containers.Container, bool) {
	for _, candidate := range candidates {
		if candidate.ID == identifier {
			return candidate, true
		}
	}
	return containers.Container{}, false
}
