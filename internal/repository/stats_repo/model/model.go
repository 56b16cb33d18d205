package model

// HouseState Состояние зала по всем игрокам
type HouseState struct {
	TotalSpins  int     // Сколько всего спинов сделано
	TotalBet    float64 // Сумма всех ставок с учетом множителя
	TotalPayout float64 // Сумма всех выплат

	CurrentRTP float64 // Текущий RTP = (TotalPayout/TotalBet)*100

	SpinWindow   []SpinSample // Окно последних спинов
	WindowBet    float64      // Сумма ставок в окне
	WindowPayout float64      // Сумма выплат в окне
	WindowRTP    float64      // RTP в окне последних спинов
	WindowSize   int          // Размер окна
}

// SpinSample Результат спина для окна
type SpinSample struct {
	Bet    float64
	Payout float64
}
