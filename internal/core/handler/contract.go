package handler

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/dgc-network/smart/internal/core/addressing"
	"github.com/dgc-network/smart/internal/core/state"
	"github.com/dgc-network/smart/pkg/interfaces/engine"
	"github.com/dgc-network/smart/pkg/interfaces/infrastructure/event"
	"github.com/dgc-network/smart/pkg/types"
)

const (
	resultSuccess            int32 = 1
	resultInvalidTransaction int32 = -3

	namespaceLength = 6
)

func createContract(a *types.CreateContractAction, signer string, st *state.Accessor) error {
	existing, err := st.GetContract(a.Name, a.Version)
	if err != nil {
		return err
	}
	if existing != nil {
		return types.WrapInvalidTransaction(ErrAlreadyExists, "Contract already exists: %s, %s", a.Name, a.Version)
	}

	registry, err := st.GetContractRegistry(a.Name)
	if err != nil {
		return err
	}
	if registry == nil {
		return types.WrapInvalidTransaction(ErrNotFound, "The Contract Registry does not exist: %s", a.Name)
	}
	if !registry.HasOwner(signer) {
		return denied("Only owners can submit new versions of contracts: %s", signer)
	}

	contract := types.Contract{
		Name:     a.Name,
		Version:  a.Version,
		Inputs:   a.Inputs,
		Outputs:  a.Outputs,
		Creator:  signer,
		Contract: a.Contract,
	}
	if err := st.SetContract(a.Name, a.Version, contract); err != nil {
		return err
	}

	sum := sha512.Sum512(a.Contract)
	registry.Versions = append(registry.Versions, types.ContractVersion{
		Version:        a.Version,
		ContractSha512: hex.EncodeToString(sum[:]),
		Creator:        signer,
	})
	return st.SetContractRegistry(a.Name, *registry)
}

func deleteContract(a *types.DeleteContractAction, signer string, st *state.Accessor) error {
	existing, err := st.GetContract(a.Name, a.Version)
	if err != nil {
		return err
	}
	if existing == nil {
		return types.WrapInvalidTransaction(ErrNotFound, "Contract does not exist: %s, %s", a.Name, a.Version)
	}

	registry, err := st.GetContractRegistry(a.Name)
	if err != nil {
		return err
	}
	if registry == nil {
		return types.WrapInvalidTransaction(ErrNotFound, "Contract Registry does not exist: %s", a.Name)
	}
	if !registry.HasOwner(signer) {
		return denied("Signer is not an owner of this contract: %s", signer)
	}

	for i, v := range registry.Versions {
		if v.Version == a.Version {
			registry.Versions = append(registry.Versions[:i], registry.Versions[i+1:]...)
			break
		}
	}
	if err := st.SetContractRegistry(a.Name, *registry); err != nil {
		return err
	}
	return st.DeleteContract(a.Name, a.Version)
}

func (h *Handler) executeContract(ctx context.Context, a *types.ExecuteContractAction, request *types.ProcessRequest, st *state.Accessor) error {
	contract, err := st.GetContract(a.Name, a.Version)
	if err != nil {
		return err
	}
	if contract == nil {
		return types.WrapInvalidTransaction(ErrNotFound, "Contract does not exist: %s, %s", a.Name, a.Version)
	}

	for _, input := range a.Inputs {
		if err := checkNamespacePermission(st, a.Name, input, false); err != nil {
			return err
		}
	}
	for _, output := range a.Outputs {
		if err := checkNamespacePermission(st, a.Name, output, true); err != nil {
			return err
		}
	}

	if h.executor == nil {
		return types.NewInternalError("No contract executor configured")
	}

	start := time.Now()
	result, err := h.executor.Execute(ctx, &engine.Invocation{
		Name:      a.Name,
		Version:   a.Version,
		Code:      contract.Contract,
		Payload:   a.Payload,
		Signer:    request.Header.SignerPublicKey,
		Signature: request.Signature,
	}, st.Context())
	elapsed := time.Since(start)
	if err != nil {
		h.observeContract(a, request, engine.Result{}, elapsed, "fault")
		return types.WrapInternalError(err, "Wasm contract execution failed: %s, %s", a.Name, a.Version)
	}

	code := "none"
	if result.HasResult {
		code = strconv.Itoa(int(result.Code))
	}
	h.observeContract(a, request, result, elapsed, code)

	switch {
	case !result.HasResult:
		return types.NewInvalidTransaction("Wasm contract did not return a result: %s, %s", a.Name, a.Version)
	case result.Code == resultSuccess:
		return nil
	case result.Code == resultInvalidTransaction:
		return types.WrapInvalidTransaction(ErrContractRejected, "Wasm contract returned invalid transaction: %s, %s", a.Name, a.Version)
	default:
		return types.NewInternalError("Wasm contract returned internal error: %d", result.Code)
	}
}

func (h *Handler) observeContract(a *types.ExecuteContractAction, request *types.ProcessRequest, result engine.Result, elapsed time.Duration, code string) {
	if h.metrics != nil {
		h.metrics.ObserveContract(a.Name, code, elapsed)
	}
	if h.events != nil {
		h.events.Publish(event.EventType(types.TopicContractExecuted), &types.ContractExecutionEvent{
			Name:       a.Name,
			Version:    a.Version,
			Signer:     request.Header.SignerPublicKey,
			ReturnCode: result.Code,
			HasResult:  result.HasResult,
			Duration:   elapsed,
		})
	}
}

// checkNamespacePermission requires the most specific namespace registry
// covering address to grant contractName read (inputs) or write (outputs).
func checkNamespacePermission(st *state.Accessor, contractName, address string, write bool) error {
	kind := "Input"
	if write {
		kind = "Output"
	}
	namespace, err := addressing.Namespace(address)
	if err != nil {
		return types.WrapInvalidTransaction(ErrNoPermission, "%s must have at least 6 characters: %s", kind, address)
	}

	registries, err := st.GetNamespaceRegistries(namespace)
	if err != nil {
		return err
	}
	if len(registries) == 0 {
		return types.WrapInvalidTransaction(ErrNoPermission, "Namespace Registry does not exist: %s", namespace)
	}

	var registry *types.NamespaceRegistry
	for i := range registries {
		candidate := &registries[i]
		if len(candidate.Namespace) > len(address) || address[:len(candidate.Namespace)] != candidate.Namespace {
			continue
		}
		if registry == nil || len(candidate.Namespace) >= len(registry.Namespace) {
			registry = candidate
		}
	}

	if registry == nil {
		if write {
			return types.WrapInvalidTransaction(ErrNoPermission, "No namespace registry exists for namespace: %s output: %s", namespace, address)
		}
		return types.WrapInvalidTransaction(ErrNoPermission, "No namespace registry exists for namespace: %s input: %s", namespace, address)
	}

	permission := registry.Permission(contractName)
	if write {
		if permission == nil || !permission.Write {
			return types.WrapInvalidTransaction(ErrNoPermission, "Contract does not have permission to write to state: %s, %s", contractName, address)
		}
		return nil
	}
	if permission == nil || !permission.Read {
		return types.WrapInvalidTransaction(ErrNoPermission, "Contract does not have permission to read from state : %s %s", contractName, address)
	}
	return nil
}
