// Package handler applies smart transactions: it authorizes each action,
// maintains the contract, namespace, permission, account and organization
// registries, and runs contracts through a ContractExecutor.
package handler

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dgc-network/smart/internal/core/addressing"
	"github.com/dgc-network/smart/internal/core/payload"
	"github.com/dgc-network/smart/internal/core/state"
	"github.com/dgc-network/smart/pkg/interfaces/engine"
	"github.com/dgc-network/smart/pkg/interfaces/infrastructure/event"
	"github.com/dgc-network/smart/pkg/interfaces/infrastructure/log"
	"github.com/dgc-network/smart/pkg/interfaces/infrastructure/metrics"
	"github.com/dgc-network/smart/pkg/interfaces/processor"
	statectx "github.com/dgc-network/smart/pkg/interfaces/state"
	"github.com/dgc-network/smart/pkg/types"
)

const (
	FamilyName    = "sabre"
	FamilyVersion = "0.4"
)

// Options carries the optional collaborators of a Handler.
type Options struct {
	Logger  log.Logger
	Metrics metrics.Recorder
	Events  event.EventBus
}

// Handler is the transaction family handler.
type Handler struct {
	executor engine.ContractExecutor
	logger   log.Logger
	metrics  metrics.Recorder
	events   event.EventBus
}

var _ processor.TransactionHandler = (*Handler)(nil)

// New builds a Handler. executor may be nil, in which case ExecuteContract
// fails with an internal error.
func New(executor engine.ContractExecutor, opts Options) *Handler {
	return &Handler{
		executor: executor,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		events:   opts.Events,
	}
}

func (h *Handler) FamilyName() string { return FamilyName }

func (h *Handler) FamilyVersions() []string { return []string{FamilyVersion} }

// Namespaces are the prefixes registered with the validator.
func (h *Handler) Namespaces() []string {
	return []string{
		addressing.NamespaceRegistryPrefix,
		addressing.ContractRegistryPrefix,
		addressing.ContractPrefix,
	}
}

// AllNamespaces also lists the smart permission and account/organization
// prefixes the handler writes to.
func (h *Handler) AllNamespaces() []string {
	return append(h.Namespaces(), addressing.SmartPermissionPrefix, addressing.PikePrefix)
}

// Apply decodes the request payload and executes its action against
// stateCtx. The caller discards stateCtx writes when an error is returned.
func (h *Handler) Apply(ctx context.Context, request *types.ProcessRequest, stateCtx statectx.TransactionContext) error {
	start := time.Now()
	if request == nil {
		return types.NewInvalidTransaction("Request must contain a payload")
	}

	action, err := payload.Decode(request.Payload)
	actionType := types.ActionUnset
	if err == nil {
		actionType = action.Type()
		if h.logger != nil {
			h.logger.Infof("%s %v %v", actionType, request.Header.Inputs, request.Header.Outputs)
		}
		err = h.dispatch(ctx, action, request, state.NewAccessor(stateCtx))
	}

	var applyErr *types.ApplyError
	if err != nil && !errors.As(err, &applyErr) {
		err = types.WrapInternalError(err, "Unexpected failure applying %s", actionType)
	}
	h.report(request, actionType, err, time.Since(start))
	return err
}

func (h *Handler) dispatch(ctx context.Context, action types.Action, request *types.ProcessRequest, st *state.Accessor) error {
	signer := request.Header.SignerPublicKey

	switch a := action.(type) {
	case *types.CreateContractAction:
		return createContract(a, signer, st)
	case *types.DeleteContractAction:
		return deleteContract(a, signer, st)
	case *types.ExecuteContractAction:
		return h.executeContract(ctx, a, request, st)

	case *types.CreateContractRegistryAction:
		return createContractRegistry(a, signer, st)
	case *types.DeleteContractRegistryAction:
		return deleteContractRegistry(a, signer, st)
	case *types.UpdateContractRegistryOwnersAction:
		return updateContractRegistryOwners(a, signer, st)

	case *types.CreateNamespaceRegistryAction:
		return createNamespaceRegistry(a, signer, st)
	case *types.DeleteNamespaceRegistryAction:
		return deleteNamespaceRegistry(a, signer, st)
	case *types.UpdateNamespaceRegistryOwnersAction:
		return updateNamespaceRegistryOwners(a, signer, st)
	case *types.CreateNamespaceRegistryPermissionAction:
		return createNamespaceRegistryPermission(a, signer, st)
	case *types.DeleteNamespaceRegistryPermissionAction:
		return deleteNamespaceRegistryPermission(a, signer, st)

	case *types.CreateSmartPermissionAction:
		return createSmartPermission(a, signer, st)
	case *types.UpdateSmartPermissionAction:
		return updateSmartPermission(a, signer, st)
	case *types.DeleteSmartPermissionAction:
		return deleteSmartPermission(a, signer, st)

	case *types.CreateAccountAction:
		return createAccount(a, signer, st)
	case *types.UpdateAccountAction:
		return updateAccount(a, signer, st)
	case *types.CreateOrganizationAction:
		return createOrganization(a, signer, st)
	case *types.UpdateOrganizationAction:
		return updateOrganization(a, signer, st)
	}
	return types.NewInvalidTransaction("Cannot deserialize payload")
}

func (h *Handler) report(request *types.ProcessRequest, actionType types.ActionType, err error, elapsed time.Duration) {
	outcome := metrics.OutcomeApplied
	switch {
	case types.IsInternalError(err):
		outcome = metrics.OutcomeInternal
		if h.logger != nil {
			h.logger.Errorf("%s failed: %v", actionType, err)
		}
	case err != nil:
		outcome = metrics.OutcomeInvalid
		if h.logger != nil {
			h.logger.Debugf("%s rejected: %v", actionType, err)
		}
	}

	if h.metrics != nil {
		h.metrics.ObserveTransaction(actionType.String(), outcome, elapsed)
	}
	if h.events == nil {
		return
	}

	evt := &types.TransactionEvent{
		ID:        uuid.New().String(),
		Action:    actionType,
		Signer:    request.Header.SignerPublicKey,
		Signature: request.Signature,
		Duration:  elapsed,
	}
	if err != nil {
		evt.Error = err.Error()
		evt.Internal = types.IsInternalError(err)
		h.events.Publish(event.EventType(types.TopicTransactionRejected), evt)
		return
	}
	h.events.Publish(event.EventType(types.TopicTransactionApplied), evt)
}
