package builtin

import (
	"github.com/filecoin-project/go-state-types/abi"
)

const (
	MethodSend        = abi.MethodNum(0)
	MethodConstructor = abi.MethodNum(1)
)

var MethodsAccount = struct {
	Constructor   abi.MethodNum
	PubkeyAddress abi.MethodNum
}{MethodConstructor, 2}

var MethodsCore = struct {
	Constructor                   abi.MethodNum
	CreateRequest                 abi.MethodNum
	Accept                        abi.MethodNum
	Decline                       abi.MethodNum
	Cancel                        abi.MethodNum
	UpdateExpectedAmount          abi.MethodNum
	UpdateBalance                 abi.MethodNum
	AddTrustedCurrencyContract    abi.MethodNum
	RemoveTrustedCurrencyContract abi.MethodNum
	AddTrustedExtension           abi.MethodNum
	RemoveTrustedExtension        abi.MethodNum
	AddTrustedSubContract         abi.MethodNum
	RemoveTrustedSubContract      abi.MethodNum
	Pause                         abi.MethodNum
	Unpause                       abi.MethodNum
	SetBurnManager                abi.MethodNum
	GetCollectEstimation          abi.MethodNum
	CollectForBurning             abi.MethodNum
	GetRequest                    abi.MethodNum
	GetExtension                  abi.MethodNum
	IsTrustedCurrencyContract     abi.MethodNum
	IsTrustedExtension            abi.MethodNum
	IsTrustedSubContract          abi.MethodNum
	GetRequestIDAt                abi.MethodNum
}{MethodConstructor, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24}

var MethodsEthereum = struct {
	Constructor          abi.MethodNum
	CreateRequestAsPayee abi.MethodNum
	CreateRequestAsPayer abi.MethodNum
	Accept               abi.MethodNum
	Cancel               abi.MethodNum
	Decline              abi.MethodNum
	AdditionalAction     abi.MethodNum
	SubtractAction       abi.MethodNum
	Pay                  abi.MethodNum
	RefundAction         abi.MethodNum
	Withdraw             abi.MethodNum
	ExtensionPayment     abi.MethodNum
	ExtensionFundOrder   abi.MethodNum
	ExtensionCancel      abi.MethodNum
	GetWithdrawable      abi.MethodNum
	GetHeld              abi.MethodNum
}{MethodConstructor, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}

// Hook methods implemented by every extension. Method 1 is left to the extension's own constructor.
var MethodsExtension = struct {
	CreateRequest    abi.MethodNum
	Accept           abi.MethodNum
	Decline          abi.MethodNum
	Cancel           abi.MethodNum
	Payment          abi.MethodNum
	Refund           abi.MethodNum
	AdditionalAction abi.MethodNum
	AddSubtract      abi.MethodNum
}{2, 3, 4, 5, 6, 7, 8, 9}

var MethodsEscrow = struct {
	Constructor      abi.MethodNum
	CreateRequest    abi.MethodNum
	Accept           abi.MethodNum
	Decline          abi.MethodNum
	Cancel           abi.MethodNum
	Payment          abi.MethodNum
	Refund           abi.MethodNum
	AdditionalAction abi.MethodNum
	AddSubtract      abi.MethodNum
	ReleaseToPayee   abi.MethodNum
	RefundToPayer    abi.MethodNum
	Pause            abi.MethodNum
	Unpause          abi.MethodNum
	GetEscrow        abi.MethodNum
}{MethodConstructor, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}

var MethodsBurn = struct {
	Constructor abi.MethodNum
	ComputeFee  abi.MethodNum
	SetPolicy   abi.MethodNum
}{MethodConstructor, 2, 3}
