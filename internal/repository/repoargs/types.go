package repoargs

type RepositoryName string

const (
	ShopBalanceRepoName       RepositoryName = "shop_balance"
	TransactionRepoName       RepositoryName = "transaction"
	RecurringPaymentRepoName  RepositoryName = "recurring_payment"
	UpcomingPaymentRepoName   RepositoryName = "upcoming_payment"
	WalletRepoName            RepositoryName = "wallet"
	WalletTransactionRepoName RepositoryName = "wallet_transaction"
	OrderRepoName             RepositoryName = "order"
	PaymentRepoName           RepositoryName = "payment"
	ProcessedEventRepoName    RepositoryName = "processed_event"
)

// BatchExecQueryRow колбек батч запроса без возвращаемых строк. i - индекс элемента во входном срезе.
type BatchExecQueryRow func(i int, err error)
