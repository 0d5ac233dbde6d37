package odm

// GranularityType classifies how much of a study's data an ODM
// document carries.
type GranularityType string

const (
	GranularityAll             GranularityType = "All"
	GranularityMetadata        GranularityType = "Metadata"
	GranularityAdminData       GranularityType = "AdminData"
	GranularityReferenceData   GranularityType = "ReferenceData"
	GranularityAllClinicalData GranularityType = "AllClinicalData"
	GranularitySingleSite      GranularityType = "SingleSite"
	GranularitySingleSubject   GranularityType = "SingleSubject"
)

func (g GranularityType) valid() bool {
	switch g {
	case GranularityAll, GranularityMetadata, GranularityAdminData,
		GranularityReferenceData, GranularityAllClinicalData,
		GranularitySingleSite, GranularitySingleSubject:
		return true
	}
	return false
}

// FileType says whether a document carries transactional history or a
// point-in-time snapshot of the data it describes.
type FileType string

const (
	FileTypeTransactional FileType = "Transactional"
	FileTypeSnapshot      FileType = "Snapshot"
)

func (f FileType) valid() bool {
	return f == FileTypeTransactional || f == FileTypeSnapshot
}

// TransactionType is the ODM TransactionType attribute. Each data
// element accepts its own subset, validated at assignment.
type TransactionType string

const (
	TransactionInsert  TransactionType = "Insert"
	TransactionUpdate  TransactionType = "Update"
	TransactionUpsert  TransactionType = "Upsert"
	TransactionContext TransactionType = "Context"
	TransactionRemove  TransactionType = "Remove"
)

// LocationType classifies an admin-data Location.
type LocationType string

const (
	LocationSponsor LocationType = "Sponsor"
	LocationSite    LocationType = "Site"
	LocationCRO     LocationType = "CRO"
	LocationLab     LocationType = "Lab"
	LocationOther   LocationType = "Other"
)

func (l LocationType) valid() bool {
	switch l {
	case LocationSponsor, LocationSite, LocationCRO, LocationLab, LocationOther:
		return true
	}
	return false
}

// UserType classifies an admin-data User.
type UserType string

const (
	UserSponsor      UserType = "Sponsor"
	UserInvestigator UserType = "Investigator"
	UserLab          UserType = "Lab"
	UserOther        UserType = "Other"
)

func (u UserType) valid() bool {
	switch u {
	case UserSponsor, UserInvestigator, UserLab, UserOther:
		return true
	}
	return false
}

// QueryStatusType is the status of a vendor query extension element.
type QueryStatusType string

const (
	QueryOpen      QueryStatusType = "Open"
	QueryCancelled QueryStatusType = "Cancelled"
	QueryAnswered  QueryStatusType = "Answered"
	QueryForwarded QueryStatusType = "Forwarded"
	QueryClosed    QueryStatusType = "Closed"
)

func (q QueryStatusType) valid() bool {
	switch q {
	case QueryOpen, QueryCancelled, QueryAnswered, QueryForwarded, QueryClosed:
		return true
	}
	return false
}

// StudyEventType is the Type attribute of a StudyEventDef.
type StudyEventType string

const (
	EventScheduled   StudyEventType = "Scheduled"
	EventUnscheduled StudyEventType = "Unscheduled"
	EventCommon      StudyEventType = "Common"
)

func (s StudyEventType) valid() bool {
	return s == EventScheduled || s == EventUnscheduled || s == EventCommon
}
