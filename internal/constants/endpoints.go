package constants

// Endpoint paths of the public data portal (apis.data.go.kr). All endpoints
// share one envelope shape and one serviceKey query credential.
const (
	PathComplexList   = "/1613000/AptListService3/getSigunguAptList3"
	PathComplexBasic  = "/1613000/AptBasisInfoServiceV3/getAphusBassInfoV3"
	PathComplexDetail = "/1613000/AptBasisInfoServiceV3/getAphusDtlInfoV3"
	PathTrades        = "/1613000/RTMSDataSvcAptTradeDev/getRTMSDataSvcAptTradeDev"
	PathRents         = "/1613000/RTMSDataSvcAptRent/getRTMSDataSvcAptRent"

	// Management-fee sub-category services; the operation is appended per
	// category, see fees.go.
	ServiceCommonCost     = "/1613000/AptCmnuseManageCostServiceV2"
	ServiceIndividualCost = "/1613000/AptIndvdlzManageCostServiceV2"
)

// Result-code semantics of the portal envelope.
const (
	ResultCodeSuccess    = "00"
	ResultCodeSuccessAlt = "000" // some services zero-pad differently
)

// Auth-class result codes. These cannot succeed on retry, the whole run must
// abort instead of burning the retry budget per record.
var AuthErrorCodes = map[string]struct{}{
	"20": {}, // service access denied
	"22": {}, // quota exceeded
	"30": {}, // unregistered service key
	"31": {}, // expired service key
	"32": {}, // unregistered referer/IP
	"33": {}, // signature mismatch
}
